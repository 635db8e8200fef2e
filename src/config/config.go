// Package config reads the engine's own config file (.plzcoreconfig), an
// optional ini-style file overriding the worker count, output directory
// name and cache directory a BuildEnvironment is constructed with.
package config

import (
	"os"

	"github.com/please-build/gcfg"

	"github.com/Reregistered/games-framework/src/logging"
)

// ConfigFileName is the file a repository may check in to override the
// engine's defaults.
const ConfigFileName = ".plzcoreconfig"

// Configuration mirrors the ini sections gcfg expects: one Go struct
// field per [section], one field within it per key.
type Configuration struct {
	Build struct {
		OutDir  string
		Workers int
	}
	Cache struct {
		Dir string
	}
}

// Default returns a Configuration populated with the engine's built-in
// defaults, before any file on disk has been applied.
func Default() *Configuration {
	c := &Configuration{}
	c.Build.OutDir = "build-out"
	c.Build.Workers = 0 // 0 means "use runtime.NumCPU()"
	c.Cache.Dir = ".plzcore-cache"
	return c
}

// Read merges filename's contents into the default configuration. A
// missing file is not an error -- the defaults alone are a valid
// configuration -- but a malformed one is.
func Read(filename string) (*Configuration, error) {
	c := Default()
	logging.Log.Debugf("reading config from %s", filename)
	if err := gcfg.ReadFileInto(c, filename); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		if gcfg.FatalOnly(err) != nil {
			return nil, err
		}
		logging.Log.Warningf("non-fatal error in config file %s: %s", filename, err)
	}
	return c, nil
}
