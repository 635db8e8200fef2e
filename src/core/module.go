// Module is a named container owning a set of Rules, namespacing them
// under one path prefix within a Project.

package core

import (
	"sort"
)

// Module groups Rules under a single forward-slash path. Rule names are
// unique within a Module.
type Module struct {
	// Path is this module's forward-slash path, e.g. "src/audio". The
	// root module (rules added directly to a Project) uses "".
	Path string

	rules map[string]*Rule
}

// NewModule constructs an empty Module at the given path.
func NewModule(path string) *Module {
	return &Module{Path: path, rules: map[string]*Rule{}}
}

// AddRule adds rule to this module, stamping it with the module's path.
// It panics if a rule with the same name already exists, mirroring the
// "unique within a module" invariant -- this is a programming error in
// the loading layer, not a recoverable build-time condition.
func (m *Module) AddRule(rule *Rule) {
	if _, present := m.rules[rule.name]; present {
		panic("duplicate rule name in module " + m.Path + ": " + rule.name)
	}
	rule.setOwningModule(m.Path)
	m.rules[rule.name] = rule
}

// GetRule returns the rule with the given unqualified name, or nil if
// this module doesn't have one.
func (m *Module) GetRule(name string) *Rule {
	return m.rules[name]
}

// Rules returns the module's rules sorted by name.
func (m *Module) Rules() []*Rule {
	ret := make([]*Rule, 0, len(m.rules))
	for _, r := range m.rules {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].name < ret[j].name })
	return ret
}

// Len returns the number of rules registered in this module.
func (m *Module) Len() int { return len(m.rules) }
