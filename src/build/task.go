// Task is an atomic unit of filesystem work that the orchestrator
// dispatches to a worker pool; TaskHandle is the promise-style completion
// handle a RuleContext chains itself to.

package build

import (
	"context"
	"sync"
)

// A Task is a unit of work with one operation. It must be safe to run on
// a worker goroutine distinct from the one that created it, and must not
// mutate shared Rule/Project state -- only its own task-specific state
// and the filesystem.
type Task interface {
	Execute(ctx context.Context) error
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements Task.
func (f TaskFunc) Execute(ctx context.Context) error { return f(ctx) }

// A TaskHandle is returned by BuildEnvironment.RunAsync; it resolves
// exactly once, with the error (nil on success) the task completed with.
type TaskHandle struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newTaskHandle() *TaskHandle {
	return &TaskHandle{done: make(chan struct{})}
}

func (h *TaskHandle) resolve(err error) {
	h.once.Do(func() {
		h.err = err
		close(h.done)
	})
}

// Wait blocks until the task this handle refers to has completed, or ctx
// is cancelled first.
func (h *TaskHandle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
