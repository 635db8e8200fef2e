// BuildEnvironment holds the process-wide configuration and worker pool
// a BuildContext dispatches Tasks through. There is normally one
// BuildEnvironment per invocation of the build engine.

package build

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/Reregistered/games-framework/src/logging"
)

// DefaultOutDirName is the output tree directory created under RootDir
// when no explicit out root is configured.
const DefaultOutDirName = "build-out"

// BuildEnvironment carries the project root, output root and worker pool
// shared by every RuleContext in a single build run.
type BuildEnvironment struct {
	RootDir string
	OutRoot string

	workers int
	pool    *pool
}

// EnvOption configures a BuildEnvironment at construction time.
type EnvOption func(*BuildEnvironment)

// WithOutRoot overrides the default "build-out" output directory name.
func WithOutRoot(name string) EnvOption {
	return func(e *BuildEnvironment) { e.OutRoot = name }
}

// WithWorkers overrides the default worker count (runtime.NumCPU()).
func WithWorkers(n int) EnvOption {
	return func(e *BuildEnvironment) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewBuildEnvironment constructs a BuildEnvironment rooted at rootDir.
func NewBuildEnvironment(rootDir string, opts ...EnvOption) *BuildEnvironment {
	e := &BuildEnvironment{RootDir: rootDir, OutRoot: DefaultOutDirName, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = newPool(e.workers)
	logging.Log.Debugf("build environment: root=%s out=%s workers=%d", e.RootDir, e.OutRoot, e.workers)
	return e
}

// OutDir returns the absolute output directory a module's rules write
// their outputs under.
func (e *BuildEnvironment) OutDir(modulePath string) string {
	return filepath.Join(e.RootDir, e.OutRoot, modulePath)
}

// ModuleDir returns the absolute source directory for a module.
func (e *BuildEnvironment) ModuleDir(modulePath string) string {
	return filepath.Join(e.RootDir, modulePath)
}

// Submit queues fn to run on the worker pool and returns a handle that
// resolves with fn's return value.
func (e *BuildEnvironment) Submit(fn func() error) *TaskHandle {
	handle := newTaskHandle()
	e.pool.submit(func() {
		handle.resolve(fn())
	})
	return handle
}

// RunAsync queues a Task to run on the worker pool.
func (e *BuildEnvironment) RunAsync(ctx context.Context, task Task) *TaskHandle {
	return e.Submit(func() error { return task.Execute(ctx) })
}

// Close stops the worker pool, waiting for queued work to drain. Callers
// should not Submit after Close.
func (e *BuildEnvironment) Close() {
	e.pool.close()
}
