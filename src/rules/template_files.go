// template_files substitutes "${key}" placeholders in each resolved src
// against the rule's params map, writing one output file per src. An
// output extension override can be supplied to avoid colliding with the
// unprocessed source file when both live in the same tree.

package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Reregistered/games-framework/src/build"
	"github.com/Reregistered/games-framework/src/core"
)

// TemplateFilesKind is the rule-type tag registered for template_files.
const TemplateFilesKind = "template_files"

var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

type templateFilesTask struct {
	pairs  [][2]string
	params map[string]string
}

func (t *templateFilesTask) Execute(ctx context.Context) error {
	for _, pair := range t.pairs {
		data, err := os.ReadFile(pair[0])
		if err != nil {
			return err
		}
		result, err := substitute(string(data), t.params)
		if err != nil {
			return fmt.Errorf("%s: %w", pair[0], err)
		}
		if err := os.WriteFile(pair[1], []byte(result), 0644); err != nil {
			return err
		}
	}
	return nil
}

// substitute replaces every "${key}" placeholder in tmpl with params[key],
// returning an error naming the first placeholder with no matching key.
func substitute(tmpl string, params map[string]string) (string, error) {
	var missing string
	result := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if v, ok := params[key]; ok {
			return v
		}
		if missing == "" {
			missing = key
		}
		return match
	})
	if missing != "" {
		return "", fmt.Errorf("unknown template placeholder %q", missing)
	}
	return result, nil
}

func templateFilesBehavior(rule *core.Rule) build.Behavior {
	return build.BehaviorFunc(func(rc *build.RuleContext) error {
		srcs, err := rc.SrcPaths()
		if err != nil {
			return err
		}

		task := &templateFilesTask{params: rule.Params}
		for _, src := range srcs {
			out := rc.GetOutPathForSrc(src)
			if rule.NewExtension != "" {
				out = strings.TrimSuffix(out, filepath.Ext(out)) + rule.NewExtension
			}
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
	Register(TemplateFilesKind, templateFilesBehavior)
}
