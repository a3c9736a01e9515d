package supervisor

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		exit Exit
		want int
	}{
		{"clean return", Exit{Task: "grpc"}, 0},
		{"signal", Exit{Task: "signals", Signal: syscall.SIGTERM}, 0},
		{"error", Exit{Task: "metrics", Err: errors.New("bind failed")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.exit.Code(); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestRunFirstErrorWins(t *testing.T) {
	bindErr := errors.New("address already in use")

	s := New(nil)
	s.Add("grpc", blockUntilDone)
	s.Add("metrics", func(ctx context.Context) error { return bindErr })

	exit := s.Run(context.Background())

	if exit.Task != "metrics" {
		t.Errorf("Task = %q, want %q", exit.Task, "metrics")
	}
	if !errors.Is(exit.Err, bindErr) {
		t.Errorf("Err = %v, want %v", exit.Err, bindErr)
	}
	if exit.Code() != 1 {
		t.Errorf("Code() = %d, want 1", exit.Code())
	}
}

func TestRunCleanReturn(t *testing.T) {
	s := New(nil)
	s.Add("grpc", func(ctx context.Context) error { return nil })
	s.Add("metrics", blockUntilDone)

	exit := s.Run(context.Background())

	if exit.Task != "grpc" || exit.Err != nil || exit.Code() != 0 {
		t.Errorf("Run() = %+v, want clean exit of grpc", exit)
	}
}

func TestRunSignal(t *testing.T) {
	l := NewSignalListener(syscall.SIGUSR1)
	defer l.Stop()

	s := New(nil)
	s.Add("signals", l.Run)
	s.Add("grpc", blockUntilDone)

	l.ch <- syscall.SIGTERM

	exit := s.Run(context.Background())

	if exit.Signal != syscall.SIGTERM {
		t.Errorf("Signal = %v, want %v", exit.Signal, syscall.SIGTERM)
	}
	if exit.Err != nil {
		t.Errorf("Err = %v, want nil", exit.Err)
	}
	if exit.Code() != 0 {
		t.Errorf("Code() = %d, want 0", exit.Code())
	}
}

func TestRunDoesNotWaitForInFlightWork(t *testing.T) {
	l := NewSignalListener(syscall.SIGUSR1)
	defer l.Stop()

	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})

	s := New(nil)
	s.Add("signals", l.Run)
	// A request that ignores cancellation.
	s.Add("grpc", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})

	go func() {
		<-started
		l.ch <- syscall.SIGINT
	}()

	done := make(chan Exit, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case exit := <-done:
		if exit.Task != "signals" {
			t.Errorf("Task = %q, want %q", exit.Task, "signals")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run waited for the in-flight task")
	}
}

func TestRunCancelsSharedContext(t *testing.T) {
	cancelled := make(chan struct{})

	s := New(nil)
	s.Add("failing", func(ctx context.Context) error { return errors.New("boom") })
	s.Add("watcher", func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return nil
	})

	s.Run(context.Background())

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("shared context was not cancelled")
	}
}

func TestRunParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)

	s := New(nil)
	s.Add("grpc", func(context.Context) error {
		<-release
		return nil
	})

	exit := s.Run(ctx)
	if exit.Code() != 0 {
		t.Errorf("Code() = %d, want 0", exit.Code())
	}
}

func TestRunNoTasks(t *testing.T) {
	if exit := New(nil).Run(context.Background()); exit.Code() != 1 {
		t.Errorf("Code() = %d, want 1", exit.Code())
	}
}

func TestSignalListenerWaitContext(t *testing.T) {
	l := NewSignalListener(syscall.SIGUSR1)
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	sig, err := l.Wait(ctx)
	if sig != nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() = %v, %v, want nil, DeadlineExceeded", sig, err)
	}
}
