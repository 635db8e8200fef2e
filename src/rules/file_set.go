// file_set aggregates a rule's resolved srcs (literal files and/or other
// rules' outputs) into one de-duplicated output list, with no task
// dispatch at all -- it never touches the filesystem.

package rules

import (
	"github.com/Reregistered/games-framework/src/build"
	"github.com/Reregistered/games-framework/src/core"
)

// FileSetKind is the rule-type tag registered for file_set.
const FileSetKind = "file_set"

func fileSetBehavior(rule *core.Rule) build.Behavior {
	return build.BehaviorFunc(func(rc *build.RuleContext) error {
		srcs, err := rc.SrcPaths()
		if err != nil {
			return err
		}
		rc.AppendOutputPaths(srcs...)
		rc.Succeed()
		return nil
	})
}

func init() {
	Register(FileSetKind, fileSetBehavior)
}
