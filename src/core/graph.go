// RuleGraph answers reachability queries over a Project's dependency
// edges and computes a topological execution order for a set of
// requested targets.
//
// Sequencing uses a depth-first post-order traversal from each requested
// target, emitting a rule only after all its deps have been emitted, and
// tracking an in-progress set during the traversal so that revisiting a
// node already on the current path is detected as a dependency cycle
// rather than infinite recursion.

package core

import (
	"sort"
	"sync"

	"github.com/Reregistered/games-framework/src/errs"
)

// RuleGraph is built once from a (by this point frozen) Project and
// answers has_dependency/calculate_rule_sequence queries against it.
type RuleGraph struct {
	project *Project

	mu        sync.Mutex
	adjacency map[RuleID][]RuleID
}

// NewRuleGraph builds the adjacency map for every rule currently in
// project. Each rule's deps are resolved relative to that rule's own
// owning module, per the "local reference" semantics of the identifier
// grammar -- a dep written as ":sibling" always means a rule in the same
// module as the rule declaring it, regardless of which module a caller
// later queries the graph from.
func NewRuleGraph(project *Project) *RuleGraph {
	g := &RuleGraph{project: project, adjacency: map[RuleID][]RuleID{}}
	for _, r := range project.Rules() {
		deps := make([]RuleID, 0, len(r.deps))
		for _, d := range r.deps {
			modulePath, name := splitRuleRef(d, r.owningModule)
			deps = append(deps, RuleID{ModulePath: modulePath, Name: name})
		}
		g.adjacency[r.ID()] = deps
	}
	return g
}

// Project returns the project this graph was built from.
func (g *RuleGraph) Project() *Project { return g.project }

// HasDependency returns true if toPath is reachable from fromPath along
// dep edges. It is reflexive: a rule is always considered to depend on
// itself. Returns a *errs.LookupError if either path doesn't resolve in
// the project.
func (g *RuleGraph) HasDependency(fromPath, toPath string) (bool, error) {
	from, err := g.project.GetRuleOrError(fromPath)
	if err != nil {
		return false, err
	}
	to, err := g.project.GetRuleOrError(toPath)
	if err != nil {
		return false, err
	}
	if from.ID() == to.ID() {
		return true, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	visited := map[RuleID]bool{}
	return g.reaches(from.ID(), to.ID(), visited), nil
}

func (g *RuleGraph) reaches(from, to RuleID, visited map[RuleID]bool) bool {
	if visited[from] {
		return false
	}
	visited[from] = true
	for _, dep := range g.adjacency[from] {
		if dep == to || g.reaches(dep, to, visited) {
			return true
		}
	}
	return false
}

// CalculateRuleSequence produces a topological ordering containing every
// rule transitively required by targetPaths, with each target appearing
// after all of its dependencies. Each rule appears at most once even when
// reachable from more than one requested target. Returns a
// *errs.LookupError for an unresolvable path or a *errs.CycleError if a
// dependency cycle is encountered.
func (g *RuleGraph) CalculateRuleSequence(targetPaths []string) ([]*Rule, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sequence []*Rule
	visited := map[RuleID]bool{}
	inProgress := map[RuleID]bool{}
	var chain []RuleID

	var visit func(id RuleID) error
	visit = func(id RuleID) error {
		if visited[id] {
			return nil
		}
		if inProgress[id] {
			return errs.NewCycleError(closeCycle(chain, id))
		}
		rule, err := g.project.GetRuleOrError(id.FullName())
		if err != nil {
			return err
		}
		inProgress[id] = true
		chain = append(chain, id)
		for _, dep := range g.adjacency[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		chain = chain[:len(chain)-1]
		inProgress[id] = false
		visited[id] = true
		sequence = append(sequence, rule)
		return nil
	}

	for _, t := range targetPaths {
		rule, err := g.project.GetRuleOrError(t)
		if err != nil {
			return nil, err
		}
		if err := visit(rule.ID()); err != nil {
			return nil, err
		}
	}
	return sequence, nil
}

// closeCycle renders the chain of rule ids from the first occurrence of
// closing (the node we just tried to revisit while it's still
// in-progress) through to the present, plus closing again to show the
// loop closing.
func closeCycle(chain []RuleID, closing RuleID) []string {
	start := 0
	for i, id := range chain {
		if id == closing {
			start = i
			break
		}
	}
	ret := make([]string, 0, len(chain)-start+1)
	for _, id := range chain[start:] {
		ret = append(ret, id.FullName())
	}
	ret = append(ret, closing.FullName())
	return ret
}

// AllRuleIDs returns every rule id currently known to the graph, sorted,
// primarily useful for diagnostics and tests.
func (g *RuleGraph) AllRuleIDs() []RuleID {
	g.mu.Lock()
	defer g.mu.Unlock()
	ret := make([]RuleID, 0, len(g.adjacency))
	for id := range g.adjacency {
		ret = append(ret, id)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].FullName() < ret[j].FullName() })
	return ret
}
