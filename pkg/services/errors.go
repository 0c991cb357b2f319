package services

import (
	"errors"
	"fmt"
)

// NetworkError marks a recoverable transport failure from any collaborator.
// The funnel surfaces it as a user-facing message plus an error transition;
// retries are always user-initiated.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("services: %s failed", e.Op)
	}
	return fmt.Sprintf("services: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError wraps err as a NetworkError for operation op.
func NewNetworkError(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
