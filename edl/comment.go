package edl

import (
	"regexp"
	"strings"
)

type commentKind int

const (
	commentText commentKind = iota
	commentSourceFile
	commentSourceClip
)

var (
	sourceFilePattern = regexp.MustCompile(`^\*\s*SOURCE FILE\s*:\s*(.*)$`)
	sourceClipPattern = regexp.MustCompile(`^\*\s*FROM CLIP NAME\s*:\s*(.*)$`)
)

// classifyComment decides what a comment line carries and returns its
// trimmed payload. Checks run in order: source file, clip name, a
// generic "*" comment, and finally the bare line as free text.
func classifyComment(line string) (commentKind, string) {
	line = strings.TrimSpace(line)
	if m := sourceFilePattern.FindStringSubmatch(line); m != nil {
		return commentSourceFile, strings.TrimSpace(m[1])
	}
	if m := sourceClipPattern.FindStringSubmatch(line); m != nil {
		return commentSourceClip, strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(line, "*") {
		return commentText, strings.TrimSpace(line[1:])
	}
	return commentText, line
}

// joinComment appends text to a comment that may span several lines
func joinComment(comment, text string) string {
	if comment == "" {
		return text
	}
	return strings.TrimSpace(comment + " " + text)
}

// AddComment folds one comment line into e. Source file and clip name
// comments replace SourceFile and SourceClip; anything else, including
// text without a leading '*', is appended to Comment.
func (e *Event) AddComment(line string) {
	switch kind, text := classifyComment(line); kind {
	case commentSourceFile:
		e.SourceFile = text
	case commentSourceClip:
		e.SourceClip = text
	default:
		e.Comment = joinComment(e.Comment, text)
	}
}
