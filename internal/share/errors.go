package share

import (
	"errors"
	"fmt"
)

var (
	// ErrCompression matches every CompressionError.
	ErrCompression = errors.New("failed to generate link")
	// ErrDecode matches every DecodeError.
	ErrDecode = errors.New("link invalid or corrupted")
)

// CompressionError reports that a payload could not be serialised or
// compressed. The link is never emitted in a truncated form.
type CompressionError struct {
	Cause error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("share: compression failed: %v", e.Cause)
}

func (e *CompressionError) Unwrap() error { return e.Cause }

func (e *CompressionError) Is(target error) bool { return target == ErrCompression }

// DecodeError reports a missing, truncated or tampered share payload.
type DecodeError struct {
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("share: %s: %v", e.Reason, e.Cause)
	}
	return "share: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func decodeErr(reason string, cause error) error {
	return &DecodeError{Reason: reason, Cause: cause}
}
