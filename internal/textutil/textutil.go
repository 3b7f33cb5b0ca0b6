// Package textutil holds small helpers for turning file bytes into document
// text and mapping byte offsets to 1-based lines.
package textutil

import (
	"bytes"
	"sort"
)

// NormalizeUTF8LF converts CRLF to LF and ensures the output is valid UTF-8
// by replacing invalid byte sequences with the Unicode replacement character.
func NormalizeUTF8LF(b []byte) []byte {
	// Normalize newlines first
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	// Ensure valid UTF-8
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// Lines indexes the line starts of a text so offsets can be reported as
// 1-based line numbers.
type Lines struct {
	starts []int
	length int
}

// NewLines indexes text.
func NewLines(text string) *Lines {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Lines{starts: starts, length: len(text)}
}

// Count returns the number of lines. A trailing newline does not open a
// new line.
func (l *Lines) Count() int {
	n := len(l.starts)
	if n > 1 && l.starts[n-1] == l.length {
		n--
	}
	return n
}

// LineOf returns the 1-based line containing offset. Offsets past the end
// map to the last line.
func (l *Lines) LineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset })
}

// Span returns the 1-based inclusive line range of [start, end). An empty
// range reports the line of start on both ends.
func (l *Lines) Span(start, end int) (first, last int) {
	first = l.LineOf(start)
	if end <= start {
		return first, first
	}
	return first, l.LineOf(end - 1)
}

// LineCount returns how many lines a [start, end) range touches.
func (l *Lines) LineCount(start, end int) int {
	first, last := l.Span(start, end)
	return last - first + 1
}
