// Registry maps a Rule's Kind string to the Behavior constructor that
// gives that kind its actual build-time semantics. Rule-type packages
// (see package rules) register their kinds here at init time.

package build

import "github.com/Reregistered/games-framework/src/core"

// Behavior is the piece of a rule type a RuleContext delegates to: given
// the RuleContext it was handed (carrying its Rule; source paths are
// resolved on demand through SrcPaths), it either calls Succeed or Chains
// at least one task handle before returning, or returns a non-nil error.
// A Behavior that returns nil having done neither is treated as having
// succeeded.
type Behavior interface {
	Begin(rc *RuleContext) error
}

// BehaviorFunc adapts a plain function to Behavior.
type BehaviorFunc func(rc *RuleContext) error

// Begin implements Behavior.
func (f BehaviorFunc) Begin(rc *RuleContext) error { return f(rc) }

// Factory builds the Behavior for one rule instance of a registered kind.
type Factory func(rule *core.Rule) Behavior

// Registry is a kind -> Factory lookup table.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register associates kind with factory. Registering the same kind twice
// overwrites the previous factory, mirroring how a later import
// shadowing an earlier one would behave.
func (r *Registry) Register(kind string, factory Factory) {
	r.factories[kind] = factory
}

// Lookup returns the factory registered for kind, if any.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}
