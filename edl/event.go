// Package edl parses CMX 3600 edit decision lists.
//
// An Event is built from one event line:
//
//	003  BOONE_SM V     C        01:01:43:05 01:01:57:00 01:00:07:26 01:00:21:21
//
// and then fed the comment and motion effect lines that follow it
// with AddComment and SetMotionEffect. Decode does this for a whole list.
package edl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cbsinteractive/edl/timecode"
)

// Event is one edit of an edit decision list. Zero values mean the
// field is not set: edit and track numbers start at one.
type Event struct {
	Number      int
	Reel        string
	TrackType   string
	TrackNumber int
	Transition  string

	SourceStart *timecode.Timecode
	SourceEnd   *timecode.Timecode
	RecordStart *timecode.Timecode
	RecordEnd   *timecode.Timecode

	SourceFile   string
	SourceClip   string
	Comment      string
	MotionEffect *MotionEffect
}

// MotionEffect describes an M2 speed change applied to the source clip.
// Speed is in frames per second; negative values play in reverse.
type MotionEffect struct {
	Reel       string            `json:"reel"`
	Speed      float64           `json:"speed"`
	EntryPoint timecode.Timecode `json:"entryPoint"`
}

const minFields = 8

var trackPattern = regexp.MustCompile(`^([A-Za-z/]+)(\d*)$`)

// ParseEvent parses an event line. The fields are whitespace separated
// and in fixed order:
//
//	<number> <reel> <track> <transition> <srcIn> <srcOut> <recIn> <recOut>
//
// Transition parameters such as a dissolve duration ("D 030") are kept
// in Transition. The timecodes are parsed at fps, zero meaning
// timecode.DefaultFrameRate. Any malformed field fails the whole line.
func ParseEvent(line string, fps float64) (*Event, error) {
	f := strings.Fields(line)
	if len(f) < minFields {
		return nil, &FormatError{Input: line, Msg: fmt.Sprintf("want %d fields, have %d", minFields, len(f))}
	}
	n, err := strconv.Atoi(f[0])
	if err != nil || n <= 0 {
		return nil, &FormatError{Input: line, Msg: "bad edit number " + strconv.Quote(f[0]), Err: err}
	}
	e := &Event{
		Number:     n,
		Reel:       f[1],
		Transition: strings.Join(f[3:len(f)-4], " "),
	}
	if e.TrackType, e.TrackNumber, err = parseTrack(f[2]); err != nil {
		return nil, &FormatError{Input: line, Msg: "bad track", Err: err}
	}
	tc := f[len(f)-4:]
	for i, dst := range []**timecode.Timecode{&e.SourceStart, &e.SourceEnd, &e.RecordStart, &e.RecordEnd} {
		t, err := timecode.Parse(tc[i], fps)
		if err != nil {
			return nil, &FormatError{Input: line, Msg: "bad timecode", Err: err}
		}
		*dst = &t
	}
	return e, nil
}

// parseTrack splits a track spec like "A10" into its type and number
func parseTrack(spec string) (kind string, num int, err error) {
	m := trackPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", 0, fmt.Errorf("want letters and an optional number, have %q", spec)
	}
	if m[2] != "" {
		num, err = strconv.Atoi(m[2])
	}
	return m[1], num, err
}

// FrameRate returns the rate of the event's timecodes, or the default
// rate when none are set
func (e *Event) FrameRate() float64 {
	for _, t := range []*timecode.Timecode{e.SourceStart, e.SourceEnd, e.RecordStart, e.RecordEnd} {
		if t != nil {
			return t.FrameRate
		}
	}
	return timecode.DefaultFrameRate
}
