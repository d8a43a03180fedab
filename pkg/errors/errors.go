// Package errors provides structured error reporting for the Tether library.
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
	// KindLifecycle indicates a lifecycle transition error.
	KindLifecycle
	// KindValue indicates a reactive value access error.
	KindValue
	// KindScope indicates a resource scope cleanup error.
	KindScope
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindValue:
		return "value"
	case KindScope:
		return "scope"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TetherError represents a structured error in the Tether library.
type TetherError struct {
	// Op is the operation that failed (e.g., "lifecycle.Advance").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Owner names the presentation model that owns the failing resource,
	// if applicable.
	Owner string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TetherError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("%s [%s] owner=%s: %v", e.Op, e.Kind, e.Owner, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TetherError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "lifecycle.Scope.Clear").
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

// ErrorHandler receives errors reported by the Tether library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TetherError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
