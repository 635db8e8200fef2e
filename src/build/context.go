// RuleContext is the per-rule state machine a Behavior drives: it starts
// pending, moves to running when Begin is invoked, and reaches a terminal
// state (succeeded or failed) either because the behavior calls Succeed
// directly or because every task handle it chained itself to has
// resolved.

package build

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Reregistered/games-framework/src/core"
	"github.com/Reregistered/games-framework/src/errs"
	"github.com/Reregistered/games-framework/src/fs"
)

// State is a RuleContext's position in its pending/running/terminal
// lifecycle.
type State int32

const (
	Pending State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RuleContext carries one rule's build-time state: its resolved source
// paths, registered output paths, and the task handles it is waiting on
// before it can be considered terminal.
type RuleContext struct {
	bc       *BuildContext
	rule     *core.Rule
	behavior Behavior

	mu      sync.Mutex
	state   State
	outputs []string
	pending []*TaskHandle
	err     error
}

// NewRuleContext constructs a pending RuleContext for rule, driven by
// behavior once Begin is called.
func NewRuleContext(bc *BuildContext, rule *core.Rule, behavior Behavior) *RuleContext {
	return &RuleContext{bc: bc, rule: rule, behavior: behavior, state: Pending}
}

// Rule returns the rule this context is executing.
func (rc *RuleContext) Rule() *core.Rule { return rc.rule }

// Env returns the build engine's shared environment.
func (rc *RuleContext) Env() *BuildEnvironment { return rc.bc.env }

// State returns the context's current lifecycle state.
func (rc *RuleContext) State() State {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}

// SrcPaths resolves the rule's srcs into an ordered, de-duplicated list
// of absolute paths. A literal src is resolved relative to the rule's
// owning module's source directory; a local rule reference (":name")
// is resolved by looking up that rule's already-recorded output paths.
// CalculateRuleSequence orders only deps first, so the referenced rule
// has run only if it is also listed in deps; if its outputs are not
// recorded, SrcPaths returns a *errs.LookupError.
func (rc *RuleContext) SrcPaths() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	moduleDir := rc.Env().ModuleDir(rc.rule.ID().ModulePath)
	for _, src := range rc.rule.Srcs() {
		if core_isLocalSrcRef(src) {
			depID := core.RuleID{ModulePath: rc.rule.ID().ModulePath, Name: src[1:]}
			outputs, ok := rc.bc.outputsFor(depID)
			if !ok {
				return nil, errs.NewLookupError(src)
			}
			for _, o := range outputs {
				add(o)
			}
			continue
		}
		add(filepath.Join(moduleDir, src))
	}
	return out, nil
}

// core_isLocalSrcRef mirrors core's unexported isLocalSrcRef so this
// package doesn't need it exported just for one caller.
func core_isLocalSrcRef(src string) bool {
	return len(src) > 0 && src[0] == ':'
}

// AppendOutputPaths registers paths as outputs this rule produced.
func (rc *RuleContext) AppendOutputPaths(paths ...string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.outputs = append(rc.outputs, paths...)
}

// Outputs returns the output paths registered so far.
func (rc *RuleContext) Outputs() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]string(nil), rc.outputs...)
}

// GetOutPath returns the canonical output path for a single-output rule:
// name if given, else the rule's Out attribute, else the rule's own name.
func (rc *RuleContext) GetOutPath(name string) string {
	if name == "" {
		name = rc.rule.Out
	}
	if name == "" {
		name = rc.rule.Name()
	}
	return filepath.Join(rc.Env().OutDir(rc.rule.ID().ModulePath), name)
}

// GetOutPathForSrc mirrors a resolved source path into this rule's output
// tree, preserving its position relative to the module's source
// directory. Sources that don't live under the module directory (for
// instance outputs inherited from a dependency in another module) fall
// back to just their base name.
func (rc *RuleContext) GetOutPathForSrc(srcPath string) string {
	moduleDir := rc.Env().ModuleDir(rc.rule.ID().ModulePath)
	rel, err := filepath.Rel(moduleDir, srcPath)
	if err != nil || len(rel) >= 2 && rel[:2] == ".." {
		rel = filepath.Base(srcPath)
	}
	return filepath.Join(rc.Env().OutDir(rc.rule.ID().ModulePath), rel)
}

// EnsureOutputExists ensures the given output directory exists.
func (rc *RuleContext) EnsureOutputExists(dir string) error {
	return fs.EnsureDir(dir)
}

// RunTaskAsync dispatches task to the worker pool and chains this
// context to its completion.
func (rc *RuleContext) RunTaskAsync(ctx context.Context, task Task) *TaskHandle {
	handle := rc.Env().RunAsync(ctx, task)
	rc.Chain(handle)
	return handle
}

// Chain registers handle as one this context must wait on before it can
// reach a terminal state.
func (rc *RuleContext) Chain(handle *TaskHandle) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.pending = append(rc.pending, handle)
}

// Succeed transitions this context straight to Succeeded, for rule
// behaviors that complete their work synchronously within Begin.
func (rc *RuleContext) Succeed() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.state == Running || rc.state == Pending {
		rc.state = Succeeded
	}
}

func (rc *RuleContext) fail(err error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.state != Failed {
		rc.state = Failed
		rc.err = err
	}
}

// begin runs the rule's behavior and blocks until the context reaches a
// terminal state, returning its error (nil on success).
func (rc *RuleContext) begin(ctx context.Context) error {
	rc.mu.Lock()
	if rc.state != Pending {
		rc.mu.Unlock()
		return fmt.Errorf("rule context for %s already started", rc.rule.FullName())
	}
	rc.state = Running
	rc.mu.Unlock()

	if err := rc.behavior.Begin(rc); err != nil {
		rc.fail(errs.NewTaskError(rc.rule.FullName(), err))
	}

	return rc.await(ctx)
}

func (rc *RuleContext) await(ctx context.Context) error {
	for {
		rc.mu.Lock()
		if rc.state == Succeeded || rc.state == Failed {
			state, err := rc.state, rc.err
			rc.mu.Unlock()
			if state == Failed {
				return err
			}
			return nil
		}
		pending := rc.pending
		rc.pending = nil
		rc.mu.Unlock()

		if len(pending) == 0 {
			// Running with nothing left to wait on and no explicit
			// Succeed call: treat as complete.
			rc.Succeed()
			continue
		}
		for _, h := range pending {
			if err := h.Wait(ctx); err != nil {
				rc.fail(errs.NewTaskError(rc.rule.FullName(), err))
			}
		}
		rc.mu.Lock()
		if rc.state == Running {
			rc.state = Succeeded
		}
		rc.mu.Unlock()
	}
}
