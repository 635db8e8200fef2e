package main

import "github.com/Reregistered/games-framework/src/core"

// demoProject builds a small fixed project illustrating each of the
// engine's rule kinds wired together: a file_set aggregating some
// sources, a copy_files rule mirroring them into the output tree, a
// concat_files rule joining two of them into one artifact, and a
// template_files rule substituting a param into a third.
//
// Real project loading (discovering modules, parsing rule declarations
// from files on disk) is outside this engine's scope; plzcore exists to
// exercise the engine end to end against a project it already knows the
// shape of.
func demoProject() *core.Project {
	assets, _ := core.NewRule("file_set", "sources", core.Srcs("a.txt", "b.txt", "greeting.tmpl"))

	mirrored, _ := core.NewRule("copy_files", "mirrored", core.Deps(":sources"), core.Srcs(":sources"))

	combined, _ := core.NewRule("concat_files", "combined",
		core.Srcs("a.txt", "b.txt"),
		core.WithOut("combined.txt"))

	greeting, _ := core.NewRule("template_files", "greeting",
		core.Srcs("greeting.tmpl"),
		core.WithNewExtension(".txt"),
		core.WithParams(map[string]string{"name": "games-framework"}))

	all, _ := core.NewRule("file_set", "all", core.Deps(":mirrored", ":combined", ":greeting"))

	m := core.NewModule("demo")
	m.AddRule(assets)
	m.AddRule(mirrored)
	m.AddRule(combined)
	m.AddRule(greeting)
	m.AddRule(all)

	return core.NewProject(core.WithProjectName("plzcore-demo"), core.WithModules(m))
}
