package timecode

import "fmt"

// FormatError is returned when a string does not decompose into
// four numeric timecode groups, or a group is out of range
type FormatError struct {
	Input string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timecode: bad format %q: %s", e.Input, e.Msg)
}

// RangeError is returned when a timecode component is out of range
type RangeError struct {
	Field string
	Value float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("timecode: %s out of range: %v", e.Field, e.Value)
}
