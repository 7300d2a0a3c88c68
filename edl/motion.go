package edl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cbsinteractive/edl/timecode"
)

var motionPattern = regexp.MustCompile(`^M2\s+(\S+)\s+([-+]?\d+(?:\.\d*)?)\s+(\S+)$`)

// SetMotionEffect parses an M2 line:
//
//	M2   KIRA_PAS       024.5                01:01:25:14
//
// Lines of any other shape are ignored and leave e unchanged; the
// result reports whether the line was used.
func (e *Event) SetMotionEffect(line string) bool {
	m := motionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}
	speed, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return false
	}
	entry, err := timecode.Parse(m[3], e.FrameRate())
	if err != nil {
		return false
	}
	e.MotionEffect = &MotionEffect{Reel: m[1], Speed: speed, EntryPoint: entry}
	return true
}
