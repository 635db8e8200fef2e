// Project is the top-level container owning every Module (and any rules
// added directly to its root scope) participating in a build.

package core

import (
	"sort"

	"github.com/Reregistered/games-framework/src/errs"
)

// DefaultProjectName is used when a Project is constructed without an
// explicit name.
const DefaultProjectName = "unnamed-project"

// Project aggregates Modules (and root-scope Rules) into one namespace.
// Fully qualified rule paths are unique within a Project; bare rule names
// are additionally resolvable via GetRule's local-reference convenience
// provided they're unambiguous across the whole project.
type Project struct {
	// Name is a human-readable project name, defaulted when unspecified.
	Name string

	modules map[string]*Module
	// root holds rules added directly to the project, outside any
	// named module (owning module path "").
	root *Module

	byFullPath map[RuleID]*Rule
	byName     map[string][]*Rule
}

// ProjectOption configures a Project at construction time.
type ProjectOption func(*Project)

// WithProjectName overrides the default project name.
func WithProjectName(name string) ProjectOption {
	return func(p *Project) { p.Name = name }
}

// WithModules registers the given modules at construction time.
func WithModules(modules ...*Module) ProjectOption {
	return func(p *Project) {
		for _, m := range modules {
			p.AddModule(m)
		}
	}
}

// NewProject constructs an empty Project.
func NewProject(opts ...ProjectOption) *Project {
	p := &Project{
		Name:       DefaultProjectName,
		modules:    map[string]*Module{},
		root:       NewModule(""),
		byFullPath: map[RuleID]*Rule{},
		byName:     map[string][]*Rule{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddModule registers a new module (and all of the rules it currently
// holds) with the project.
func (p *Project) AddModule(m *Module) {
	p.modules[m.Path] = m
	for _, r := range m.Rules() {
		p.indexRule(r)
	}
}

// AddRule adds a rule directly to the project's root scope (outside any
// module), giving it the full name ":name".
func (p *Project) AddRule(rule *Rule) {
	p.root.AddRule(rule)
	p.indexRule(rule)
}

// AddRules adds each of the given rules to the project's root scope.
func (p *Project) AddRules(rules []*Rule) {
	for _, r := range rules {
		p.AddRule(r)
	}
}

func (p *Project) indexRule(r *Rule) {
	p.byFullPath[r.ID()] = r
	p.byName[r.name] = append(p.byName[r.name], r)
}

// Module returns the module registered at path, or nil if there is none.
func (p *Project) Module(path string) *Module {
	if path == "" {
		return p.root
	}
	return p.modules[path]
}

// GetRule resolves a fully qualified rule path (either "module/path:name"
// or the local-reference shorthand ":name") against the project.
//
// A bare name with no leading colon and no embedded colon is rejected
// with a *errs.NameError, per the contract that GetRule only accepts
// fully qualified paths. A local-reference path (":name") first checks
// the project's root scope, then -- as a convenience for callers outside
// any particular module's declaration context, such as command-line
// targets -- falls back to a project-wide search by name; it resolves
// only if exactly one rule anywhere in the project carries that name.
// Returns nil, nil if the path is well-formed but no such rule exists.
func (p *Project) GetRule(path string) (*Rule, error) {
	id, err := ParseRuleID(path)
	if err != nil {
		return nil, err
	}
	if r, ok := p.byFullPath[id]; ok {
		return r, nil
	}
	if id.ModulePath == "" {
		if candidates := p.byName[id.Name]; len(candidates) == 1 {
			return candidates[0], nil
		}
	}
	return nil, nil
}

// GetRuleOrError is like GetRule but turns a missing rule into a
// *errs.LookupError instead of a nil result; used by callers (the graph,
// target resolution) for whom an unknown path is itself an error.
func (p *Project) GetRuleOrError(path string) (*Rule, error) {
	r, err := p.GetRule(path)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errs.NewLookupError(path)
	}
	return r, nil
}

// Rules returns every rule in the project (root scope plus all modules),
// sorted by full name.
func (p *Project) Rules() []*Rule {
	ret := make([]*Rule, 0, len(p.byFullPath))
	for _, r := range p.byFullPath {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].FullName() < ret[j].FullName() })
	return ret
}

// Len returns the total number of rules registered in the project.
func (p *Project) Len() int { return len(p.byFullPath) }
