// copy_files copies every resolved src to the matching path under the
// rule's output directory, preserving file metadata but not directory
// metadata, mirroring source structure relative to the owning module.

package rules

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Reregistered/games-framework/src/build"
	"github.com/Reregistered/games-framework/src/core"
	"github.com/Reregistered/games-framework/src/fs"
)

// CopyFilesKind is the rule-type tag registered for copy_files.
const CopyFilesKind = "copy_files"

type copyFilesTask struct {
	pairs [][2]string
}

// Execute copies every pair concurrently, bounded to one goroutine per
// CPU -- the files are independent of each other, so there's no reason
// to serialize what the task already isolated onto one worker slot.
func (t *copyFilesTask) Execute(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, pair := range t.pairs {
		pair := pair
		g.Go(func() error {
			return fs.CopyFile(pair[0], pair[1])
		})
	}
	return g.Wait()
}

func copyFilesBehavior(rule *core.Rule) build.Behavior {
	return build.BehaviorFunc(func(rc *build.RuleContext) error {
		srcs, err := rc.SrcPaths()
		if err != nil {
			return err
		}

		task := &copyFilesTask{}
		for _, src := range srcs {
			out := rc.GetOutPathForSrc(src)
			if err := rc.EnsureOutputExists(filepath.Dir(out)); err != nil {
				return err
			}
			rc.AppendOutputPaths(out)
			task.pairs = append(task.pairs, [2]string{src, out})
		}

		rc.RunTaskAsync(context.Background(), task)
		return nil
	})
}

func init() {
	Register(CopyFilesKind, copyFilesBehavior)
}
