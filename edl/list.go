package edl

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"unicode"

	splice "github.com/cbsinteractive/pkg/timecode"
	"github.com/pkg/errors"
)

// List is a decoded edit decision list
type List struct {
	Title  string   `json:"title,omitempty"`
	FCM    string   `json:"fcm,omitempty"`
	Events []*Event `json:"events"`
}

const maxLine = 64 * 1024

// Decode reads an edit decision list from r, parsing event timecodes at
// fps (zero meaning timecode.DefaultFrameRate).
//
// TITLE and FCM headers are recorded on the List. A line starting with
// a number begins a new Event; M2 lines set its motion effect and any
// other line is added to it as a comment. Lines before the first Event
// that are not headers are skipped. A malformed event line fails the
// whole decode.
func Decode(r io.Reader, fps float64) (*List, error) {
	l := &List{Events: []*Event{}}
	var cur *Event

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), maxLine)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case header(line, "TITLE:"):
			l.Title = strings.TrimSpace(line[len("TITLE:"):])
		case header(line, "FCM:"):
			l.FCM = strings.TrimSpace(line[len("FCM:"):])
		case isEventLine(line):
			e, err := ParseEvent(line, fps)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			l.Events = append(l.Events, e)
			cur = e
		case cur == nil:
		case strings.HasPrefix(line, "M2"):
			if !cur.SetMotionEffect(line) {
				cur.AddComment(line)
			}
		default:
			cur.AddComment(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading edl")
	}
	return l, nil
}

func header(line, name string) bool {
	return len(line) >= len(name) && strings.EqualFold(line[:len(name)], name)
}

// isEventLine reports whether the first field of line is an edit number
func isEventLine(line string) bool {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false
	}
	for _, c := range f[0] {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// SourceSplice returns the source in and out points of the events as
// ranges in seconds, in list order. Events missing either timecode are
// skipped.
func (l *List) SourceSplice() splice.Splice {
	s := splice.Splice{}
	for _, e := range l.Events {
		if e.SourceStart != nil && e.SourceEnd != nil {
			s = append(s, splice.Range{e.SourceStart.Elapsed(), e.SourceEnd.Elapsed()})
		}
	}
	return s
}

// RecordSplice is like SourceSplice for the record timeline
func (l *List) RecordSplice() splice.Splice {
	s := splice.Splice{}
	for _, e := range l.Events {
		if e.RecordStart != nil && e.RecordEnd != nil {
			s = append(s, splice.Range{e.RecordStart.Elapsed(), e.RecordEnd.Elapsed()})
		}
	}
	return s
}

// UnmarshalJSON decodes each event through Event.UnmarshalJSON so events
// may be given as lines or records
func (l *List) UnmarshalJSON(data []byte) error {
	var v struct {
		Title  string            `json:"title"`
		FCM    string            `json:"fcm"`
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = List{Title: v.Title, FCM: v.FCM, Events: make([]*Event, 0, len(v.Events))}
	for i, raw := range v.Events {
		e := &Event{}
		if err := e.UnmarshalJSON(raw); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
		l.Events = append(l.Events, e)
	}
	return nil
}
