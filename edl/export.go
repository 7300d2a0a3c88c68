package edl

import (
	"bytes"
	"encoding/json"

	"github.com/cbsinteractive/edl/timecode"
)

// Object is the exported form of an Event. Fields that are not set on
// the Event are left out of its JSON encoding.
type Object struct {
	Number      int    `json:"number,omitempty"`
	Reel        string `json:"reel,omitempty"`
	TrackType   string `json:"trackType,omitempty"`
	TrackNumber int    `json:"trackNumber,omitempty"`
	Transition  string `json:"transition,omitempty"`

	SourceStart *timecode.Record `json:"sourceStart,omitempty"`
	SourceEnd   *timecode.Record `json:"sourceEnd,omitempty"`
	RecordStart *timecode.Record `json:"recordStart,omitempty"`
	RecordEnd   *timecode.Record `json:"recordEnd,omitempty"`

	SourceFile   string        `json:"sourceFile,omitempty"`
	SourceClip   string        `json:"sourceClip,omitempty"`
	Comment      string        `json:"comment,omitempty"`
	MotionEffect *MotionEffect `json:"motionEffect,omitempty"`
}

// ToObject returns the exported form of e
func (e *Event) ToObject() Object {
	o := Object{
		Number:      e.Number,
		Reel:        e.Reel,
		TrackType:   e.TrackType,
		TrackNumber: e.TrackNumber,
		Transition:  e.Transition,
		SourceStart: record(e.SourceStart),
		SourceEnd:   record(e.SourceEnd),
		RecordStart: record(e.RecordStart),
		RecordEnd:   record(e.RecordEnd),
		SourceFile:  e.SourceFile,
		SourceClip:  e.SourceClip,
		Comment:     e.Comment,
	}
	if e.MotionEffect != nil {
		m := *e.MotionEffect
		o.MotionEffect = &m
	}
	return o
}

func record(t *timecode.Timecode) *timecode.Record {
	if t == nil {
		return nil
	}
	r := t.Record()
	return &r
}

// ToJSON serializes the exported form of e. Compact output has no
// whitespace; otherwise it is indented by two spaces.
func (e *Event) ToJSON(compact bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(e.ToObject())
	} else {
		data, err = json.MarshalIndent(e.ToObject(), "", "  ")
	}
	return string(data), err
}

// MarshalJSON encodes the exported form of e
func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToObject())
}

// UnmarshalJSON builds e from a JSON string holding an event line, or
// from a JSON object holding a Record. Any other JSON value fails with
// a TypeMismatchError.
func (e *Event) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &TypeMismatchError{Kind: "empty input"}
	}
	var (
		ev  *Event
		err error
	)
	switch data[0] {
	case '"':
		var line string
		if err = json.Unmarshal(data, &line); err != nil {
			return err
		}
		ev, err = ParseEvent(line, 0)
	case '{':
		var r Record
		if err = json.Unmarshal(data, &r); err != nil {
			return err
		}
		ev, err = FromRecord(r, 0)
	default:
		return &TypeMismatchError{Kind: jsonKind(data[0])}
	}
	if err != nil {
		return err
	}
	*e = *ev
	return nil
}

func jsonKind(c byte) string {
	switch c {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '[':
		return "array"
	}
	return "number"
}
