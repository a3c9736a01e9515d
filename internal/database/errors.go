package database

import (
	"errors"
	"fmt"
)

// ErrBootstrapped is returned by Bootstrap on a registry that already holds
// its statements.
var ErrBootstrapped = errors.New("registry already bootstrapped")

// ScriptKind tells schema scripts from query scripts.
type ScriptKind string

const (
	KindSchema ScriptKind = "schema"
	KindQuery  ScriptKind = "query"
)

// ConnectionError means the store could not be reached or authenticated.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect database: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// BootstrapError names the script that stopped startup.
type BootstrapError struct {
	Kind   ScriptKind
	Script string
	Err    error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap %s script %q: %v", e.Kind, e.Script, e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// QueryError is a failure of one statement execution.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("statement %s: %v", e.Statement, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
