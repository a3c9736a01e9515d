// Package supervisor runs a process's long-lived tasks and ends the process
// when the first of them finishes.
//
// There is no draining: when one task returns, the shared context is
// cancelled as a broadcast and Run returns at once without waiting for the
// others. The caller is expected to exit, which reclaims them.
package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Task is a long-lived unit of work. It should return when ctx is done.
type Task func(ctx context.Context) error

// Exit describes why Run returned.
type Exit struct {
	Task   string
	Err    error
	Signal os.Signal
}

// Code is the process exit status: 1 when the finishing task failed, 0 for
// a signal or a clean return.
func (e Exit) Code() int {
	if e.Err != nil {
		return 1
	}
	return 0
}

// SignalExit is returned by a task that stopped because of an OS signal.
type SignalExit struct {
	Signal os.Signal
}

func (e *SignalExit) Error() string {
	return "received signal " + e.Signal.String()
}

type namedTask struct {
	name string
	run  Task
}

// Supervisor runs tasks until the first one finishes.
type Supervisor struct {
	logger *slog.Logger
	tasks  []namedTask
}

// New creates an empty supervisor.
func New(logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{logger: logger.With("component", "supervisor")}
}

// Add registers a task. Tasks start when Run is called.
func (s *Supervisor) Add(name string, task Task) {
	s.tasks = append(s.tasks, namedTask{name: name, run: task})
}

// Run starts every task in its own goroutine and returns when the first
// one finishes or ctx is done.
func (s *Supervisor) Run(ctx context.Context) Exit {
	if len(s.tasks) == 0 {
		return Exit{Err: errors.New("supervisor: no tasks")}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so abandoned tasks can still report and exit.
	results := make(chan Exit, len(s.tasks))
	for _, t := range s.tasks {
		go func() {
			results <- Exit{Task: t.name, Err: t.run(ctx)}
		}()
	}
	s.logger.Info("running", "tasks", len(s.tasks))

	var exit Exit
	select {
	case exit = <-results:
	case <-ctx.Done():
		exit = Exit{Task: "parent"}
	}

	var sig *SignalExit
	if errors.As(exit.Err, &sig) {
		exit.Signal = sig.Signal
		exit.Err = nil
	}

	switch {
	case exit.Signal != nil:
		s.logger.Info("shutting down", "task", exit.Task, "signal", exit.Signal.String())
	case exit.Err != nil:
		s.logger.Error("shutting down", "task", exit.Task, "error", exit.Err)
	default:
		s.logger.Info("shutting down", "task", exit.Task)
	}
	return exit
}
