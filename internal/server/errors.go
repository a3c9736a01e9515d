package server

import "fmt"

// ListenerError means a network listener failed to bind or stopped serving.
// It is process-scoped: the supervisor ends the process on it.
type ListenerError struct {
	Component string
	Addr      string
	Err       error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("%s listener %s: %v", e.Component, e.Addr, e.Err)
}

func (e *ListenerError) Unwrap() error { return e.Err }
