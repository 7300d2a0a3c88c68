package edl

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cbsinteractive/edl/timecode"
)

// Record is the loosely typed input form of an Event, as found in JSON
// documents or built by hand. Unknown JSON keys are ignored.
type Record struct {
	Number      int    `json:"number"`
	Reel        string `json:"reel"`
	TrackType   string `json:"trackType"`
	TrackNumber int    `json:"trackNumber"`
	Transition  string `json:"transition"`

	SourceStart Stamp `json:"sourceStart"`
	SourceEnd   Stamp `json:"sourceEnd"`
	RecordStart Stamp `json:"recordStart"`
	RecordEnd   Stamp `json:"recordEnd"`

	SourceFile   string        `json:"sourceFile"`
	SourceClip   string        `json:"sourceClip"`
	Comment      string        `json:"comment"`
	MotionEffect *MotionEffect `json:"motionEffect"`
}

// Stamp is a timecode given either as a value or as text. The zero
// Stamp is an absent timecode.
type Stamp struct {
	TC   *timecode.Timecode
	Text string
}

// At returns a Stamp holding t
func At(t timecode.Timecode) Stamp {
	return Stamp{TC: &t}
}

// Text returns a Stamp holding an unparsed timecode
func Text(s string) Stamp {
	return Stamp{Text: s}
}

// IsZero reports whether s holds no timecode
func (s Stamp) IsZero() bool {
	return s.TC == nil && s.Text == ""
}

// Timecode resolves s, parsing text at fps. The zero Stamp resolves to nil.
func (s Stamp) Timecode(fps float64) (*timecode.Timecode, error) {
	if s.IsZero() {
		return nil, nil
	}
	if s.TC != nil {
		t := *s.TC
		return &t, nil
	}
	t, err := timecode.Parse(s.Text, fps)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarshalJSON encodes text as a string and a timecode in its stored
// form, drop-frame flag included, so decoding gives back the same Stamp
func (s Stamp) MarshalJSON() ([]byte, error) {
	switch {
	case s.TC != nil:
		return json.Marshal(s.TC.Stored())
	case s.Text != "":
		return json.Marshal(s.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON keeps strings as text and decodes objects into a timecode
func (s *Stamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = Stamp{}
		return nil
	case len(data) > 0 && data[0] == '"':
		*s = Stamp{}
		return json.Unmarshal(data, &s.Text)
	}
	var t timecode.Timecode
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*s = At(t)
	return nil
}

// FromRecord copies r into a new Event, parsing any timecode given as
// text at fps (zero meaning timecode.DefaultFrameRate). A malformed
// timecode or a negative edit or track number fails with a FormatError
// and no Event is returned.
func FromRecord(r Record, fps float64) (*Event, error) {
	if r.Number < 0 {
		return nil, &FormatError{Input: strconv.Itoa(r.Number), Msg: "bad edit number"}
	}
	if r.TrackNumber < 0 {
		return nil, &FormatError{Input: strconv.Itoa(r.TrackNumber), Msg: "bad track number"}
	}
	e := &Event{
		Number:      r.Number,
		Reel:        r.Reel,
		TrackType:   r.TrackType,
		TrackNumber: r.TrackNumber,
		Transition:  r.Transition,
		SourceFile:  r.SourceFile,
		SourceClip:  r.SourceClip,
		Comment:     r.Comment,
	}
	if r.MotionEffect != nil {
		m := *r.MotionEffect
		e.MotionEffect = &m
	}
	for _, f := range []struct {
		name string
		src  Stamp
		dst  **timecode.Timecode
	}{
		{"sourceStart", r.SourceStart, &e.SourceStart},
		{"sourceEnd", r.SourceEnd, &e.SourceEnd},
		{"recordStart", r.RecordStart, &e.RecordStart},
		{"recordEnd", r.RecordEnd, &e.RecordEnd},
	} {
		t, err := f.src.Timecode(fps)
		if err != nil {
			return nil, &FormatError{Input: f.src.Text, Msg: "bad " + f.name, Err: err}
		}
		*f.dst = t
	}
	return e, nil
}

// Record returns e in input form, every timecode held as a value
func (e *Event) Record() Record {
	r := Record{
		Number:      e.Number,
		Reel:        e.Reel,
		TrackType:   e.TrackType,
		TrackNumber: e.TrackNumber,
		Transition:  e.Transition,
		SourceFile:  e.SourceFile,
		SourceClip:  e.SourceClip,
		Comment:     e.Comment,
	}
	if e.MotionEffect != nil {
		m := *e.MotionEffect
		r.MotionEffect = &m
	}
	for _, f := range []struct {
		src *timecode.Timecode
		dst *Stamp
	}{
		{e.SourceStart, &r.SourceStart},
		{e.SourceEnd, &r.SourceEnd},
		{e.RecordStart, &r.RecordStart},
		{e.RecordEnd, &r.RecordEnd},
	} {
		if f.src != nil {
			*f.dst = At(*f.src)
		}
	}
	return r
}
