package executor

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-relstore/pkg/change"
)

// Common sentinel errors
var (
	ErrVersionMismatch      = errors.New("optimistic lock version mismatch")
	ErrUnsupportedOperation = errors.New("unsupported operation kind")
	ErrNoDatabaseURL        = errors.New("no database URL configured")
)

// ExecError provides structured error information for a failed operation.
type ExecError struct {
	Kind  change.Kind // Operation kind that failed
	Table string      // Target table
	Cause error       // Underlying error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s on %s: %v", e.Kind, e.Table, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ExecError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ExecError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
