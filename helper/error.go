package helper

import "fmt"

// Error wraps an underlying error with the operation that failed.
// It keeps the original error reachable for errors.Is/errors.As checks.
type Error struct {
	Operation string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("error in %v: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new wrapped error with the given operation context.
func NewError(operation string, err error) error {
	return &Error{Operation: operation, Err: err}
}
