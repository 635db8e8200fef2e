package main

import "github.com/Reregistered/games-framework/src/logging"

// opts holds every flag plzcore accepts, grouped the way a larger build
// tool's option struct is grouped by concern.
var opts struct {
	Usage string `usage:"plzcore builds a small illustrative project with the core rule engine.\n\nIt ships a fixed, in-memory demo project rather than reading BUILD files from disk -- project loading is outside this engine's scope."`

	BuildFlags struct {
		RepoRoot   string `short:"r" long:"repo_root" description:"Root of the repository to build (sources are read relative to it)." default:"."`
		NumThreads int    `short:"n" long:"num_threads" description:"Number of concurrent worker goroutines. Default is the config file's workers setting, else number of CPUs."`
	} `group:"Options controlling what to build & how to build it"`

	OutputFlags struct {
		Verbosity logging.Level `short:"v" long:"verbosity" description:"Verbosity of logging output (0=critical .. 5=debug)." default:"3"`
	} `group:"Options controlling output & logging"`

	DeployFlags struct {
		Output string `short:"o" long:"output" description:"If set, copy every build output into this directory after a successful build."`
		Clean  bool   `short:"c" long:"clean" description:"Remove the deploy output directory before copying into it."`
	} `group:"Options controlling deployment"`

	HelpFlags struct {
		Version bool `long:"version" description:"Print the version and exit."`
	} `group:"Help options"`

	Args struct {
		Targets []string `positional-arg-name:"targets" description:"Rule targets to build, e.g. :all or assets:sprites."`
	} `positional-args:"true"`
}
