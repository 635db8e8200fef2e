package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Reregistered/games-framework/src/errs"
)

// buildSampleProject constructs a small fixture shared by the tests
// below: module "m" with rules a1, a2, a3, b(deps=[:a1,:a2]), c(deps=[:b]).
func buildSampleProject(t *testing.T) *Project {
	t.Helper()
	a1, err := NewRule("file_set", "a1")
	assert.NoError(t, err)
	a2, err := NewRule("file_set", "a2")
	assert.NoError(t, err)
	a3, err := NewRule("file_set", "a3")
	assert.NoError(t, err)
	b, err := NewRule("file_set", "b", Deps(":a1", ":a2"))
	assert.NoError(t, err)
	c, err := NewRule("file_set", "c", Deps(":b"))
	assert.NoError(t, err)

	m := NewModule("m")
	m.AddRule(a1)
	m.AddRule(a2)
	m.AddRule(a3)
	m.AddRule(b)
	m.AddRule(c)

	return NewProject(WithModules(m))
}

func TestHasDependencyOnEmptyProjectErrors(t *testing.T) {
	graph := NewRuleGraph(NewProject())
	_, err := graph.HasDependency(":a", ":b")
	var lookupErr *errs.LookupError
	assert.ErrorAs(t, err, &lookupErr)
}

func TestHasDependency(t *testing.T) {
	graph := NewRuleGraph(buildSampleProject(t))

	ok, err := graph.HasDependency(":c", ":c")
	assert.NoError(t, err)
	assert.True(t, ok) // reflexive: a rule depends on itself

	ok, err = graph.HasDependency(":a3", ":a3")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = graph.HasDependency(":c", ":b")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = graph.HasDependency(":c", ":a1") // transitive, through b
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = graph.HasDependency(":b", ":a1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = graph.HasDependency(":b", ":c") // wrong direction
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = graph.HasDependency(":a1", ":a2")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = graph.HasDependency(":c", ":a3") // unrelated rule
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = graph.HasDependency(":c", ":x") // unknown target rule
	var lookupErr *errs.LookupError
	assert.ErrorAs(t, err, &lookupErr)

	_, err = graph.HasDependency(":x", ":c")
	assert.ErrorAs(t, err, &lookupErr)

	_, err = graph.HasDependency(":x", ":x")
	assert.ErrorAs(t, err, &lookupErr)
}

func TestCalculateRuleSequence(t *testing.T) {
	graph := NewRuleGraph(buildSampleProject(t))

	_, err := graph.CalculateRuleSequence([]string{":x"}) // unknown target
	var lookupErr *errs.LookupError
	assert.ErrorAs(t, err, &lookupErr)

	seq, err := graph.CalculateRuleSequence([]string{":a1"})
	assert.NoError(t, err)
	assert.Len(t, seq, 1)
	assert.Equal(t, ":a1", seq[0].FullName())

	seq, err = graph.CalculateRuleSequence([]string{":b"})
	assert.NoError(t, err)
	assert.Len(t, seq, 3)
	assertEitherOrder(t, seq[0], seq[1], "a1", "a2")
	assert.Equal(t, ":b", seq[2].FullName())

	seq, err = graph.CalculateRuleSequence([]string{":a1", ":b"}) // overlapping targets
	assert.NoError(t, err)
	assert.Len(t, seq, 3) // a1 not duplicated
	assertEitherOrder(t, seq[0], seq[1], "a1", "a2")
	assert.Equal(t, ":b", seq[2].FullName())

	seq, err = graph.CalculateRuleSequence([]string{":a1", ":a3"})
	assert.NoError(t, err)
	assert.Len(t, seq, 2)
	assertEitherOrder(t, seq[0], seq[1], "a1", "a3")
}

func assertEitherOrder(t *testing.T, first, second *Rule, nameA, nameB string) {
	t.Helper()
	ok := (first.Name() == nameA && second.Name() == nameB) ||
		(first.Name() == nameB && second.Name() == nameA)
	assert.True(t, ok, "expected %s/%s in either order, got %s/%s", nameA, nameB, first.Name(), second.Name())
}

func TestCalculateRuleSequenceDetectsCycle(t *testing.T) {
	m := NewModule("m")
	a, _ := NewRule("file_set", "a", Deps(":b"))
	b, _ := NewRule("file_set", "b", Deps(":a"))
	m.AddRule(a)
	m.AddRule(b)
	project := NewProject(WithModules(m))
	graph := NewRuleGraph(project)

	_, err := graph.CalculateRuleSequence([]string{":a"})
	var cycleErr *errs.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestMultipleTargetsNoDuplication(t *testing.T) {
	graph := NewRuleGraph(buildSampleProject(t))
	seq, err := graph.CalculateRuleSequence([]string{":c", ":b", ":a1"})
	assert.NoError(t, err)
	assert.Len(t, seq, 4) // a1, a2, b, c -- each once
	seen := map[string]int{}
	for _, r := range seq {
		seen[r.Name()]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "rule %s appeared %d times", name, count)
	}
	assert.Equal(t, ":c", seq[len(seq)-1].FullName())
}
