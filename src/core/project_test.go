package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Reregistered/games-framework/src/errs"
)

func TestEmptyProject(t *testing.T) {
	project := NewProject()
	rule, err := project.GetRule(":a")
	assert.NoError(t, err)
	assert.Nil(t, rule)
	assert.Empty(t, project.Rules())
}

func TestProjectName(t *testing.T) {
	project := NewProject()
	assert.Equal(t, DefaultProjectName, project.Name)

	project = NewProject(WithProjectName("a"))
	assert.Equal(t, "a", project.Name)
}

func TestAddRule(t *testing.T) {
	project := NewProject()
	ruleA, _ := NewRule("file_set", "a")
	ruleB, _ := NewRule("file_set", "b")

	rule, err := project.GetRule(":a")
	assert.NoError(t, err)
	assert.Nil(t, rule)

	project.AddRule(ruleA)
	rule, err = project.GetRule(":a")
	assert.NoError(t, err)
	assert.Same(t, ruleA, rule)
	assert.Len(t, project.Rules(), 1)

	rule, err = project.GetRule(":b")
	assert.NoError(t, err)
	assert.Nil(t, rule)

	project.AddRule(ruleB)
	rule, err = project.GetRule(":b")
	assert.NoError(t, err)
	assert.Same(t, ruleB, rule)
	assert.Len(t, project.Rules(), 2)
}

func TestAddRules(t *testing.T) {
	project := NewProject()
	ruleA, _ := NewRule("file_set", "a")
	ruleB, _ := NewRule("file_set", "b")

	project.AddRules([]*Rule{ruleA, ruleB})
	assert.Len(t, project.Rules(), 2)

	rule, _ := project.GetRule(":a")
	assert.Same(t, ruleA, rule)
	rule, _ = project.GetRule(":b")
	assert.Same(t, ruleB, rule)
}

func TestGetRuleRequiresQualifiedPath(t *testing.T) {
	project := NewProject()
	rule, _ := NewRule("file_set", "a")
	project.AddRule(rule)

	got, err := project.GetRule(":a")
	assert.NoError(t, err)
	assert.Same(t, rule, got)

	_, err = project.GetRule("a")
	var nameErr *errs.NameError
	assert.ErrorAs(t, err, &nameErr)

	got, err = project.GetRule(":x")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetRuleOrError(t *testing.T) {
	project := NewProject()
	_, err := project.GetRuleOrError(":missing")
	var lookupErr *errs.LookupError
	assert.ErrorAs(t, err, &lookupErr)
}
