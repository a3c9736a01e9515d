package supervisor

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// DefaultSignals are the termination signals the gateway and feeders obey.
var DefaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP}

// SignalListener waits for OS signals. Registration happens in the
// constructor, so signals that arrive before Wait are not lost.
type SignalListener struct {
	ch chan os.Signal
}

// NewSignalListener registers for signals, or DefaultSignals when none are
// given.
func NewSignalListener(signals ...os.Signal) *SignalListener {
	if len(signals) == 0 {
		signals = DefaultSignals
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	return &SignalListener{ch: ch}
}

// Wait blocks until a signal arrives or ctx is done.
func (l *SignalListener) Wait(ctx context.Context) (os.Signal, error) {
	select {
	case sig := <-l.ch:
		return sig, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run is a Task that returns *SignalExit on the first signal.
func (l *SignalListener) Run(ctx context.Context) error {
	sig, err := l.Wait(ctx)
	if err != nil {
		return nil
	}
	return &SignalExit{Signal: sig}
}

// Stop unregisters the listener.
func (l *SignalListener) Stop() {
	signal.Stop(l.ch)
}
