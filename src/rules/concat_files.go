// concat_files concatenates every resolved src, in src-list order, into a
// single output file. Concatenation is byte-wise: unlike the tool this
// is grounded on (which opened its output in text mode), srcs are copied
// as raw bytes so the result is correct regardless of encoding -- a
// resolved open question, since text-mode concatenation across platforms
// with different newline conventions silently corrupts binary srcs.

package rules

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/Reregistered/games-framework/src/build"
	"github.com/Reregistered/games-framework/src/core"
)

// ConcatFilesKind is the rule-type tag registered for concat_files.
const ConcatFilesKind = "concat_files"

type concatFilesTask struct {
	srcs []string
	out  string
}

func (t *concatFilesTask) Execute(ctx context.Context) error {
	out, err := os.OpenFile(t.out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()
	for _, src := range t.srcs {
		if err := func() error {
			in, err := os.Open(src)
			if err != nil {
				return err
			}
			defer in.Close()
			_, err = io.Copy(out, in)
			return err
		}(); err != nil {
			return err
		}
	}
	return nil
}

func concatFilesBehavior(rule *core.Rule) build.Behavior {
	return build.BehaviorFunc(func(rc *build.RuleContext) error {
		srcs, err := rc.SrcPaths()
		if err != nil {
			return err
		}

		out := rc.GetOutPath("")
		if err := rc.EnsureOutputExists(filepath.Dir(out)); err != nil {
			return err
		}
		rc.AppendOutputPaths(out)

		rc.RunTaskAsync(context.Background(), &concatFilesTask{srcs: srcs, out: out})
		return nil
	})
}

func init() {
	Register(ConcatFilesKind, concatFilesBehavior)
}
