// Package errors provides structured error handling for the Loom runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates an initialization error.
	KindInit
	// KindConfig indicates a configuration loading or parsing error.
	KindConfig
	// KindCompose indicates an error raised during a composition pass.
	KindCompose
	// KindContext indicates a missing or mistyped context value.
	KindContext
	// KindTask indicates a background task failure.
	KindTask
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindConfig:
		return "config"
	case KindCompose:
		return "compose"
	case KindContext:
		return "context"
	case KindTask:
		return "task"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// LoomError represents a structured error in the Loom runtime.
type LoomError struct {
	// Op is the operation that failed (e.g., "compose.throw").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Composable is the composable type name, if applicable.
	Composable string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LoomError) Error() string {
	if e.Composable != "" {
		return fmt.Sprintf("%s [%s] composable=%s: %v", e.Op, e.Kind, e.Composable, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LoomError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "compose.task").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ComposeError represents a failure while composing one node of the tree.
type ComposeError struct {
	// Composable is the type name of the composable that failed.
	Composable string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ComposeError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Compose(): %v", e.Composable, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Compose(): %v", e.Composable, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Compose()", e.Composable)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Loom runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *LoomError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleComposeError is called when composing a node fails.
	HandleComposeError(err *ComposeError)
}
