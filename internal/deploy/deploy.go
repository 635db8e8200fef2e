// Package deploy implements the build engine's post-processing step:
// copying every output produced by a build into one destination tree,
// collapsing away the build-out/ prefix each output was produced under.
package deploy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Reregistered/games-framework/src/fs"
	"github.com/Reregistered/games-framework/src/logging"
)

// Deploy copies each path in outputs (expected to live somewhere under
// rootDir, one level of output-tree prefix deep -- e.g.
// rootDir/build-out/m/a.txt) into destination, stripping that leading
// prefix so each output lands at its path relative to the output tree,
// module path included (rootDir/build-out/m/a.txt becomes
// destination/m/a.txt).
//
// If clean is set, destination is removed first. Unlike the tool this is
// grounded on, which unconditionally removed the destination even when
// it didn't exist yet, a missing destination is tolerated rather than
// treated as an error.
func Deploy(rootDir string, outputs []string, destination string, clean bool) error {
	if clean {
		if err := fs.RemoveAll(destination); err != nil {
			return err
		}
	}
	if err := fs.EnsureDir(destination); err != nil {
		return err
	}

	for _, out := range outputs {
		rel, err := filepath.Rel(rootDir, out)
		if err != nil {
			return fmt.Errorf("output %s is not under root %s: %w", out, rootDir, err)
		}
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 {
			return fmt.Errorf("output %s has no output-tree prefix to strip", out)
		}
		dest := filepath.Join(destination, filepath.Join(parts[1:]...))
		logging.Log.Infof("%s -> %s", out, dest)
		if err := fs.CopyFile(out, dest); err != nil {
			return err
		}
	}
	return nil
}
