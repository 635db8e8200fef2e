// Identifier grammar: rule names, local references (:name) and fully
// qualified paths (module/path:name).

package core

import (
	"strings"
	"unicode"

	"github.com/Reregistered/games-framework/src/errs"
)

// RuleID identifies a rule uniquely within a Project: the module path it
// was declared in (empty for rules added directly to the project root)
// plus its name within that module.
type RuleID struct {
	ModulePath string
	Name       string
}

// FullName renders the canonical fully qualified form of this id, e.g.
// "src/audio:convert" or ":convert" for a root-level rule.
func (id RuleID) FullName() string {
	if id.ModulePath == "" {
		return ":" + id.Name
	}
	return id.ModulePath + ":" + id.Name
}

// String implements fmt.Stringer.
func (id RuleID) String() string {
	return id.FullName()
}

// containsWhitespace reports whether s contains any whitespace rune,
// including leading or trailing space, tabs and newlines.
func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// validateRuleName checks a rule's own name: non-empty, no whitespace
// anywhere, no colon (colons are reserved to separate module path from
// name).
func validateRuleName(name string) error {
	if name == "" {
		return errs.NewNameError(name, "rule name must not be empty")
	}
	if containsWhitespace(name) {
		return errs.NewNameError(name, "rule name must not contain whitespace")
	}
	if strings.Contains(name, ":") {
		return errs.NewNameError(name, "rule name must not contain a colon")
	}
	return nil
}

// validateSrc checks a single entry of a rule's srcs list: it may be a
// literal relative file path or a local rule reference (leading ':'),
// but must be non-empty and free of whitespace either way. A colon
// appearing anywhere other than a leading position is treated as part of
// a literal path (e.g. a Windows drive letter), not as a marker -- only
// a leading ':' denotes a rule reference for srcs.
func validateSrc(src string) error {
	if src == "" {
		return errs.NewTypeError(src, "src entries must not be empty")
	}
	if containsWhitespace(src) {
		return errs.NewNameError(src, "src entries must not contain whitespace")
	}
	return nil
}

// validateDep checks a single entry of a rule's deps list: it must be a
// rule reference, either local (":name") or fully qualified
// ("module/path:name").
func validateDep(dep string) error {
	if dep == "" {
		return errs.NewTypeError(dep, "dep entries must not be empty")
	}
	if containsWhitespace(dep) {
		return errs.NewNameError(dep, "dep entries must not contain whitespace")
	}
	if !strings.HasPrefix(dep, ":") && !strings.Contains(dep, ":") {
		return errs.NewNameError(dep, "dep entries must be a rule reference (:name or module/path:name)")
	}
	return nil
}

// isLocalSrcRef returns true if a src entry is a local rule reference
// (leading ':'), as opposed to a literal file path.
func isLocalSrcRef(src string) bool {
	return strings.HasPrefix(src, ":")
}

// splitRuleRef splits a dep-style rule reference into its module path and
// name parts. For a local reference (":name") the module path returned is
// currentModule, the module the reference was declared in.
func splitRuleRef(ref, currentModule string) (modulePath, name string) {
	if strings.HasPrefix(ref, ":") {
		return currentModule, ref[1:]
	}
	idx := strings.LastIndex(ref, ":")
	return ref[:idx], ref[idx+1:]
}

// ParseRuleID parses a fully qualified path (":name" or "module/path:name")
// into a RuleID. Unlike splitRuleRef, a bare local reference resolves to
// the project root module (""), matching Project.GetRule's contract that
// only accepts fully qualified paths.
func ParseRuleID(path string) (RuleID, error) {
	if path == "" || (!strings.HasPrefix(path, ":") && !strings.Contains(path, ":")) {
		return RuleID{}, errs.NewNameError(path, "expected a fully qualified rule path (missing ':')")
	}
	modulePath, name := splitRuleRef(path, "")
	return RuleID{ModulePath: modulePath, Name: name}, nil
}
