// plzcore is a small illustrative CLI driving the build engine over a
// fixed in-memory demo project. It exists to exercise the engine end to
// end; discovering and parsing a real project's rule declarations from
// files on disk is outside this engine's scope.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/thought-machine/go-flags"

	"github.com/Reregistered/games-framework/internal/deploy"
	"github.com/Reregistered/games-framework/src/build"
	"github.com/Reregistered/games-framework/src/config"
	"github.com/Reregistered/games-framework/src/logging"
	"github.com/Reregistered/games-framework/src/rules"
)

// version is the engine's release version; pinned here since plzcore
// never ships through a real release process.
var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if opts.HelpFlags.Version {
		if v, err := semver.NewVersion(version); err == nil {
			fmt.Printf("plzcore version %s\n", v)
		} else {
			fmt.Printf("plzcore version %s\n", version)
		}
		return 0
	}

	logging.Init(opts.OutputFlags.Verbosity)

	targets := opts.Args.Targets
	if len(targets) == 0 {
		targets = []string{"demo:all"}
	}

	rootDir, err := filepath.Abs(opts.BuildFlags.RepoRoot)
	if err != nil {
		logging.Log.Errorf("resolving repo root: %s", err)
		return 1
	}

	cfg, err := config.Read(filepath.Join(rootDir, config.ConfigFileName))
	if err != nil {
		logging.Log.Errorf("reading %s: %s", config.ConfigFileName, err)
		return 1
	}

	envOpts := []build.EnvOption{build.WithOutRoot(cfg.Build.OutDir)}
	switch {
	case opts.BuildFlags.NumThreads > 0:
		envOpts = append(envOpts, build.WithWorkers(opts.BuildFlags.NumThreads))
	case cfg.Build.Workers > 0:
		envOpts = append(envOpts, build.WithWorkers(cfg.Build.Workers))
	}
	env := build.NewBuildEnvironment(rootDir, envOpts...)
	defer env.Close()

	cache, err := build.NewCacheStore(filepath.Join(rootDir, cfg.Cache.Dir))
	if err != nil {
		logging.Log.Errorf("creating cache store: %s", err)
		return 1
	}

	bc := build.NewBuildContext(demoProject(), env, rules.Default, cache)

	ok, outputs, err := bc.Run(context.Background(), targets)
	if err != nil {
		logging.Log.Errorf("build failed: %s", err)
		return 1
	}
	if !ok {
		logging.Log.Errorf("build failed")
		return 1
	}
	logging.Log.Infof("build succeeded, %d output(s)", len(outputs))

	if opts.DeployFlags.Output != "" {
		if err := deploy.Deploy(rootDir, outputs, opts.DeployFlags.Output, opts.DeployFlags.Clean); err != nil {
			logging.Log.Errorf("deploy failed: %s", err)
			return 1
		}
	}

	return 0
}
