// Package rules implements the illustrative rule kinds (file_set,
// copy_files, concat_files, template_files) against the build engine's
// Behavior contract. Each kind registers itself into Default at init
// time, mirroring how the original build_rule decorator accumulated a
// kind -> implementation table as rule modules were imported.
package rules

import "github.com/Reregistered/games-framework/src/build"

// Default is the registry every rule kind in this package registers
// itself into. Callers that only need the illustrative rule set can use
// it directly; callers wiring in additional kinds should build their own
// build.Registry and call Register against it instead.
var Default = build.NewRegistry()

// Register adds kind to Default.
func Register(kind string, factory build.Factory) {
	Default.Register(kind, factory)
}
