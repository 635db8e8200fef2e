// The Rule type: a declarative build step with an immutable identity
// (name, kind) and input lists that are set at construction time; no
// setter changes them afterwards.

package core

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
)

// Rule is a declarative build step: a named entity with ordered source
// and dependency lists plus a small bag of rule-type-specific attributes
// (out, new_extension, params). The concrete behaviour associated with a
// Kind is supplied externally by a RuleContext factory registered against
// that kind (see package build); Rule itself knows nothing about how it
// is executed.
type Rule struct {
	// name is this rule's own name, validated against the identifier
	// grammar. Immutable after construction.
	name string
	// kind is the rule-type tag, e.g. "file_set", "copy_files". It is
	// mixed into the cache key first so that two rules of different
	// types but otherwise identical inputs never collide.
	kind string
	// owningModule is set once when the rule is added to a Module;
	// empty for rules added directly to a Project's root scope.
	owningModule string

	srcs []string
	deps []string

	// Out is the optional explicit output name for single-output rules
	// (e.g. concat_files). Empty means "fall back to the rule name".
	Out string
	// NewExtension is the optional output extension override used by
	// template_files.
	NewExtension string
	// Params is the optional substitution map used by template_files.
	Params map[string]string
}

// RuleOption configures a Rule at construction time.
type RuleOption func(*Rule) error

// Srcs sets the rule's source list. Passing no arguments is equivalent to
// omitting srcs entirely (an empty list). The argument slice is
// defensively copied so later caller-side mutation cannot affect the
// constructed Rule.
func Srcs(srcs ...string) RuleOption {
	return func(r *Rule) error {
		for _, s := range srcs {
			if err := validateSrc(s); err != nil {
				return err
			}
		}
		r.srcs = append([]string(nil), srcs...)
		return nil
	}
}

// Deps sets the rule's dependency list. Every entry must be a rule
// reference (local ":name" or fully qualified "module/path:name"). The
// argument slice is defensively copied.
func Deps(deps ...string) RuleOption {
	return func(r *Rule) error {
		for _, d := range deps {
			if err := validateDep(d); err != nil {
				return err
			}
		}
		r.deps = append([]string(nil), deps...)
		return nil
	}
}

// WithOut sets the Out attribute (used by single-output rule kinds such
// as concat_files).
func WithOut(out string) RuleOption {
	return func(r *Rule) error {
		r.Out = out
		return nil
	}
}

// WithNewExtension sets the NewExtension attribute (used by
// template_files).
func WithNewExtension(ext string) RuleOption {
	return func(r *Rule) error {
		r.NewExtension = ext
		return nil
	}
}

// WithParams sets the Params substitution map (used by template_files).
// The map is defensively copied.
func WithParams(params map[string]string) RuleOption {
	return func(r *Rule) error {
		cp := make(map[string]string, len(params))
		for k, v := range params {
			cp[k] = v
		}
		r.Params = cp
		return nil
	}
}

// NewRule constructs a new Rule of the given kind with the given name and
// options applied in order. Returns a *errs.NameError or *errs.TypeError
// if name or any src/dep entry is malformed.
func NewRule(kind, name string, opts ...RuleOption) (*Rule, error) {
	if err := validateRuleName(name); err != nil {
		return nil, err
	}
	r := &Rule{kind: kind, name: name}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name returns the rule's own (unqualified) name.
func (r *Rule) Name() string { return r.name }

// Kind returns the rule-type tag this rule was constructed with.
func (r *Rule) Kind() string { return r.kind }

// ID returns this rule's identity within its owning Project.
func (r *Rule) ID() RuleID { return RuleID{ModulePath: r.owningModule, Name: r.name} }

// FullName returns the derived ":name" form, with the owning module path
// prepended once the rule has been placed in a Module.
func (r *Rule) FullName() string { return r.ID().FullName() }

// Srcs returns a copy of the rule's ordered source list. Mutating the
// returned slice does not affect the Rule.
func (r *Rule) Srcs() []string { return append([]string(nil), r.srcs...) }

// Deps returns a copy of the rule's ordered dependency list. Mutating the
// returned slice does not affect the Rule.
func (r *Rule) Deps() []string { return append([]string(nil), r.deps...) }

// setOwningModule is called by Module.AddRule to stamp the rule with its
// containing module's path. It is only valid to call this once.
func (r *Rule) setOwningModule(modulePath string) {
	r.owningModule = modulePath
}

// ComputeCacheKey returns a stable hex-encoded digest derived from this
// rule's kind, name, ordered srcs, ordered deps and type-specific
// attributes. Equal rules (same kind + same inputs) produce equal keys;
// any later mutation of srcs/deps (there is none possible through the
// public API once constructed, but the digest is still recomputed fresh
// each call rather than memoised) changes the key.
func (r *Rule) ComputeCacheKey() string {
	h := sha1.New()
	fmt.Fprintf(h, "kind:%s\n", r.kind)
	fmt.Fprintf(h, "name:%s\n", r.name)
	for _, s := range r.srcs {
		fmt.Fprintf(h, "src:%s\n", s)
	}
	for _, d := range r.deps {
		fmt.Fprintf(h, "dep:%s\n", d)
	}
	fmt.Fprintf(h, "out:%s\n", r.Out)
	fmt.Fprintf(h, "new_extension:%s\n", r.NewExtension)
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "param:%s=%s\n", k, r.Params[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}
