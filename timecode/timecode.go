// Package timecode implements frame-accurate SMPTE style timecodes
// in HH:MM:SS:FF (non-drop) and HH:MM:SS;FF (drop-frame) notation.
//
// A Timecode is a plain value; once constructed it is never modified,
// so it can be shared freely between goroutines.
package timecode

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// DefaultFrameRate is used when a caller passes a zero frame rate
const DefaultFrameRate = 29.97

// Timecode is a position expressed as hours, minutes, seconds and frames
// at a given frame rate
type Timecode struct {
	Hours     int
	Minutes   int
	Seconds   int
	Frames    int
	FrameRate float64
	DropFrame bool
}

// Record is the exported form of a Timecode. The drop-frame flag is not
// part of it; FromRecord derives it from the frame rate.
type Record struct {
	Hours     int     `json:"hours"`
	Minutes   int     `json:"minutes"`
	Seconds   int     `json:"seconds"`
	Frames    int     `json:"frames"`
	FrameRate float64 `json:"frameRate"`
}

// Stored is a Record that keeps the drop-frame flag, for storage that
// must give back the exact Timecode it was given
type Stored struct {
	Record
	DropFrame bool `json:"dropFrame"`
}

var pattern = regexp.MustCompile(`^(\d{1,2})[:;](\d{1,2})[:;](\d{1,2})([:;])(\d{1,2})$`)

// New returns the timecode h:m:s:f at fps. A zero fps selects DefaultFrameRate.
// Values outside their component range produce a RangeError.
func New(h, m, s, f int, fps float64, drop bool) (Timecode, error) {
	if fps == 0 {
		fps = DefaultFrameRate
	}
	t := Timecode{Hours: h, Minutes: m, Seconds: s, Frames: f, FrameRate: fps, DropFrame: drop}
	if err := t.validate(); err != nil {
		return Timecode{}, err
	}
	return t, nil
}

// Parse parses HH:MM:SS:FF or HH:MM:SS;FF. The first two separators may be
// either ':' or ';'; the separator before the frame number decides whether
// the result is drop-frame. A zero fps selects DefaultFrameRate.
func Parse(timecode string, fps float64) (Timecode, error) {
	if fps == 0 {
		fps = DefaultFrameRate
	}
	m := pattern.FindStringSubmatch(timecode)
	if m == nil {
		return Timecode{}, &FormatError{Input: timecode, Msg: "want HH:MM:SS:FF or HH:MM:SS;FF"}
	}
	var n [4]int
	for i, g := range []string{m[1], m[2], m[3], m[5]} {
		n[i], _ = strconv.Atoi(g)
	}
	t, err := New(n[0], n[1], n[2], n[3], fps, m[4] == ";")
	if err != nil {
		return Timecode{}, &FormatError{Input: timecode, Msg: rangeMsg(err)}
	}
	return t, nil
}

func rangeMsg(err error) string {
	if re, ok := err.(*RangeError); ok {
		return re.Field + " out of range"
	}
	return err.Error()
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package level values.
func MustParse(timecode string, fps float64) Timecode {
	t, err := Parse(timecode, fps)
	if err != nil {
		panic(err)
	}
	return t
}

// FromRecord builds a Timecode from its exported form. Fractional frame
// rates are taken to be drop-frame.
func FromRecord(r Record) (Timecode, error) {
	fps := r.FrameRate
	if fps == 0 {
		fps = DefaultFrameRate
	}
	return New(r.Hours, r.Minutes, r.Seconds, r.Frames, fps, Fractional(fps))
}

// FromStored is the inverse of Timecode.Stored
func FromStored(s Stored) (Timecode, error) {
	return New(s.Hours, s.Minutes, s.Seconds, s.Frames, s.FrameRate, s.DropFrame)
}

// Fractional reports whether fps is a non-integer (NTSC style) rate
func Fractional(fps float64) bool {
	return fps != math.Trunc(fps)
}

// Nominal returns the number of frame labels per second, the frame
// rate rounded up to the next integer (30 for 29.97)
func (t Timecode) Nominal() int {
	return int(math.Ceil(t.FrameRate))
}

func (t Timecode) validate() error {
	switch {
	case t.FrameRate <= 0 || math.IsNaN(t.FrameRate) || math.IsInf(t.FrameRate, 0):
		return &RangeError{Field: "frameRate", Value: t.FrameRate}
	case t.Hours < 0 || t.Hours > 23:
		return &RangeError{Field: "hours", Value: float64(t.Hours)}
	case t.Minutes < 0 || t.Minutes > 59:
		return &RangeError{Field: "minutes", Value: float64(t.Minutes)}
	case t.Seconds < 0 || t.Seconds > 59:
		return &RangeError{Field: "seconds", Value: float64(t.Seconds)}
	case t.Frames < 0 || t.Frames >= t.Nominal():
		return &RangeError{Field: "frames", Value: float64(t.Frames)}
	case t.DropFrame && t.Seconds == 0 && t.Minutes%10 != 0 && t.Frames < t.dropped():
		// labels skipped at the top of the minute do not exist
		return &RangeError{Field: "frames", Value: float64(t.Frames)}
	}
	return nil
}

// dropped returns the number of frame labels a drop-frame timecode
// skips at the start of each minute not divisible by ten
func (t Timecode) dropped() int {
	return int(math.Round(t.FrameRate * 0.066666))
}

// String returns the canonical HH:MM:SS:FF form, using ';' before the
// frame number when t is drop-frame
func (t Timecode) String() string {
	sep := ":"
	if t.DropFrame {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", t.Hours, t.Minutes, t.Seconds, sep, t.Frames)
}

// Record returns the exported form of t
func (t Timecode) Record() Record {
	return Record{
		Hours:     t.Hours,
		Minutes:   t.Minutes,
		Seconds:   t.Seconds,
		Frames:    t.Frames,
		FrameRate: t.FrameRate,
	}
}

// Stored returns the exported form of t along with its drop-frame flag
func (t Timecode) Stored() Stored {
	return Stored{Record: t.Record(), DropFrame: t.DropFrame}
}

// Equal reports whether hours, minutes, seconds, frames and frame rate
// of t and u match. The drop-frame flag is notation and is not compared.
func (t Timecode) Equal(u Timecode) bool {
	return t.Record() == u.Record()
}

// FrameCount returns the number of frames elapsed since 00:00:00:00.
// Drop-frame timecodes skip the first frame labels of every minute that
// is not a multiple of ten (two labels at 29.97, four at 59.94).
func (t Timecode) FrameCount() int {
	nom := t.Nominal()
	n := ((t.Hours*60+t.Minutes)*60+t.Seconds)*nom + t.Frames
	if t.DropFrame {
		mins := t.Hours*60 + t.Minutes
		n -= t.dropped() * (mins - mins/10)
	}
	return n
}

// Compare returns -1, 0 or +1 depending on whether t is before, at, or
// after u. The result is only meaningful when both share a frame rate.
func (t Timecode) Compare(u Timecode) int {
	a, b := t.FrameCount(), u.FrameCount()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Elapsed returns the wall clock position of t in seconds
func (t Timecode) Elapsed() float64 {
	return float64(t.FrameCount()) / t.FrameRate
}

// MarshalJSON encodes t as its Record
func (t Timecode) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// UnmarshalJSON accepts either the string form ("01:00:00:00") or
// a Record object. An object with a dropFrame key (see Stored) keeps
// that flag; otherwise fractional rates are taken to be drop-frame.
// Components out of range fail with a FormatError.
func (t *Timecode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := Parse(s, 0)
		if err != nil {
			return err
		}
		*t = v
		return nil
	}
	var r struct {
		Record
		DropFrame *bool `json:"dropFrame"`
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return &FormatError{Input: string(data), Msg: "want timecode string or object"}
	}
	var (
		v   Timecode
		err error
	)
	if r.DropFrame != nil {
		v, err = FromStored(Stored{Record: r.Record, DropFrame: *r.DropFrame})
	} else {
		v, err = FromRecord(r.Record)
	}
	if err != nil {
		return &FormatError{Input: string(data), Msg: rangeMsg(err)}
	}
	*t = v
	return nil
}
