package parser

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every ParseError via errors.Is.
var ErrParse = errors.New("could not read file")

// ParseError reports that the tabular decode itself failed.
// Row-level anomalies never produce a ParseError.
type ParseError struct {
	Line  int
	Cause error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("csv parse error at line %d: %v", e.Line, e.Cause)
	}
	return fmt.Sprintf("csv parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
