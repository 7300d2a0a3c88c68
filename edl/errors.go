package edl

import (
	"fmt"
)

// FormatError is returned when an event line, or a timecode field of a
// record, does not decompose into the expected tokens. Err holds the
// underlying cause, if any.
type FormatError struct {
	Input string
	Msg   string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("edl: bad event %q: %s: %v", e.Input, e.Msg, e.Err)
	}
	return fmt.Sprintf("edl: bad event %q: %s", e.Input, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// TypeMismatchError is returned when an Event is decoded from a value
// that is neither an event line nor a record
type TypeMismatchError struct {
	Kind string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("edl: cannot build event from %s: want event line or record", e.Kind)
}
