package utils

import (
	"errors"
	"fmt"
)

// OpConnect marks the backend connectivity check, the one failure the CLI
// downgrades to an operator hint instead of a hard error.
const OpConnect = "connect"

// AppError carries the failing operation alongside an operator-facing
// message, so callers react per operation instead of matching error text.
type AppError struct {
	Op  string
	Msg string
	Err error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Msg: msg, Err: err}
}

// IsConnectivity reports whether err originated from the connectivity check.
func IsConnectivity(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Op == OpConnect
}
