package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling.
var (
	// ErrRemoteUnavailable covers transport failures and non-2xx responses.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrDecodeFailure means the response body was not the expected JSON.
	ErrDecodeFailure = errors.New("decode failure")
)

// RequestError wraps a failed call with the operation that made it.
type RequestError struct {
	Op     string // "fetch", "mark", "unmark"
	Status int    // HTTP status, 0 if no response was received
	Err    error  // ErrRemoteUnavailable or ErrDecodeFailure, possibly wrapped
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s failed (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
