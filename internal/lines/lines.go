// Package lines splits captured stream text into filtered lines.
package lines

import "strings"

// Separator is the line terminator captured text is split on. It is fixed
// rather than platform dependent because fmt.Println writes "\n" everywhere.
const Separator = "\n"

type Policy struct {
	AllowEmpty bool
	Trim       bool
}

// Keep decides whether an already-trimmed line belongs in the result.
func (p Policy) Keep(line string) bool {
	return p.AllowEmpty || line != ""
}

// Split turns captured text into lines.
//
// Trailing empty segments are dropped before trimming, so the newline that
// ends the last Println never shows up as an extra line. Text without any
// separator is a single segment: an empty buffer yields one empty line,
// which survives only when the policy allows empty lines.
//
// Trimming uses strings.TrimSpace: Unicode white space is removed, while
// other control characters such as "\x01" or "\x1b" are kept.
func Split(content string, p Policy) []string {
	segments := strings.Split(content, Separator)
	if len(segments) > 1 {
		end := len(segments)
		for end > 0 && segments[end-1] == "" {
			end--
		}
		segments = segments[:end]
	}

	out := make([]string, 0, len(segments))
	for _, line := range segments {
		if p.Trim {
			line = strings.TrimSpace(line)
		}
		if !p.Keep(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}
