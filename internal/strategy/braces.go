package strategy

import (
	"fmt"

	"foldkit/internal/folding"
)

// BraceOptions configures the brace strategy.
type BraceOptions struct {
	// Pairs lists open/close characters as two-byte strings, e.g. "{}".
	Pairs []string `json:"pairs"`
	// MinLines is the minimum number of lines a block must touch to fold.
	MinLines int `json:"minLines"`
	// SkipLiterals ignores brackets inside C-family strings and comments.
	SkipLiterals bool `json:"skipLiterals"`
}

// DefaultBraceOptions folds curly-brace blocks of two or more lines.
func DefaultBraceOptions() BraceOptions {
	return BraceOptions{Pairs: []string{"{}"}, MinLines: 2, SkipLiterals: true}
}

// Braces folds multi-line bracketed blocks.
type Braces struct {
	opts  BraceOptions
	open  map[byte]byte // open -> close
	close map[byte]byte // close -> open
}

// NewBraces validates the pair list and returns a brace strategy.
func NewBraces(opts BraceOptions) (*Braces, error) {
	if len(opts.Pairs) == 0 {
		opts.Pairs = DefaultBraceOptions().Pairs
	}
	if opts.MinLines < 2 {
		opts.MinLines = 2
	}
	b := &Braces{opts: opts, open: map[byte]byte{}, close: map[byte]byte{}}
	for _, p := range opts.Pairs {
		if len(p) != 2 || p[0] == p[1] {
			return nil, fmt.Errorf("brace pair %q: want two distinct ASCII characters", p)
		}
		if _, dup := b.open[p[0]]; dup {
			return nil, fmt.Errorf("brace pair %q: duplicate opener", p)
		}
		b.open[p[0]] = p[1]
		b.close[p[1]] = p[0]
	}
	return b, nil
}

type openBrace struct {
	ch     byte
	offset int
	line   int
}

// Compute implements folding.Strategy.
func (s *Braces) Compute(doc folding.Document) ([]folding.Candidate, int) {
	text := doc.Text()
	var (
		out   []folding.Candidate
		stack []openBrace
		line  int
	)
	firstError := folding.NoError

scan:
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			line++
			continue
		}
		if s.opts.SkipLiterals {
			if next, nl, ok := skipLiteral(text, i); ok {
				line += nl
				i = next - 1
				continue
			}
		}
		if _, ok := s.open[c]; ok {
			stack = append(stack, openBrace{ch: c, offset: i, line: line})
			continue
		}
		opener, ok := s.close[c]
		if !ok {
			continue
		}
		n := len(stack)
		if n == 0 || stack[n-1].ch != opener {
			firstError = i
			break scan
		}
		top := stack[n-1]
		stack = stack[:n-1]
		if line-top.line+1 < s.opts.MinLines {
			continue
		}
		out = append(out, folding.Candidate{
			Start: top.offset,
			End:   i + 1,
			Name:  string([]byte{top.ch, '.', '.', '.', c}),
		})
	}
	if len(stack) > 0 && (firstError == folding.NoError || stack[0].offset < firstError) {
		firstError = stack[0].offset
	}
	folding.SortCandidates(out)
	return out, firstError
}

// skipLiteral reports the end of a string, char literal or comment that
// starts at i, and how many newlines it spans. Unterminated literals run
// to the end of the text.
func skipLiteral(text string, i int) (next, newlines int, ok bool) {
	c := text[i]
	switch {
	case c == '/' && i+1 < len(text) && text[i+1] == '/':
		j := i + 2
		for j < len(text) && text[j] != '\n' {
			j++
		}
		return j, 0, true
	case c == '/' && i+1 < len(text) && text[i+1] == '*':
		j := i + 2
		for j < len(text) {
			if text[j] == '*' && j+1 < len(text) && text[j+1] == '/' {
				return j + 2, newlines, true
			}
			if text[j] == '\n' {
				newlines++
			}
			j++
		}
		return j, newlines, true
	case c == '"' || c == '\'':
		j := i + 1
		for j < len(text) && text[j] != c && text[j] != '\n' {
			if text[j] == '\\' && j+1 < len(text) && text[j+1] != '\n' {
				j++
			}
			j++
		}
		if j < len(text) && text[j] == c {
			j++
		}
		return min(j, len(text)), 0, true
	case c == '`':
		j := i + 1
		for j < len(text) && text[j] != '`' {
			if text[j] == '\n' {
				newlines++
			}
			j++
		}
		if j < len(text) {
			j++
		}
		return j, newlines, true
	}
	return 0, 0, false
}
