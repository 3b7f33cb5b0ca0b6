package strategy

import (
	"foldkit/internal/folding"
)

// IndentOptions configures the indentation strategy.
type IndentOptions struct {
	TabWidth int `json:"tabWidth"`
	MinLines int `json:"minLines"`
	// Placeholder names every emitted fold; defaults to "...".
	Placeholder string `json:"placeholder"`
}

// Indent folds the lines indented deeper than the header line before them.
// The header stays visible: a fold runs from the end of the header line to
// the end of the last deeper line. Blank lines never end a block.
type Indent struct {
	opts IndentOptions
}

// NewIndent returns an indentation strategy with defaults filled in.
func NewIndent(opts IndentOptions) *Indent {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.MinLines < 2 {
		opts.MinLines = 2
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "..."
	}
	return &Indent{opts: opts}
}

type header struct {
	width int
	end   int // offset of the end of the header line content
	line  int
}

// Compute implements folding.Strategy. It never reports an error offset.
func (s *Indent) Compute(doc folding.Document) ([]folding.Candidate, int) {
	text := doc.Text()
	var (
		out      []folding.Candidate
		stack    []header
		prevEnd  int
		prevLine int
	)
	closeUntil := func(width int) {
		for len(stack) > 0 && stack[len(stack)-1].width >= width {
			h := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if prevEnd > h.end && prevLine-h.line+1 >= s.opts.MinLines {
				out = append(out, folding.Candidate{Start: h.end, End: prevEnd, Name: s.opts.Placeholder})
			}
		}
	}

	line := 0
	for pos := 0; pos <= len(text); line++ {
		eol := pos
		for eol < len(text) && text[eol] != '\n' {
			eol++
		}
		content := eol
		if content > pos && text[content-1] == '\r' {
			content--
		}
		if width, blank := s.measure(text[pos:content]); !blank {
			closeUntil(width)
			stack = append(stack, header{width: width, end: content, line: line})
			prevEnd, prevLine = content, line
		}
		if eol == len(text) {
			break
		}
		pos = eol + 1
	}
	closeUntil(0)

	folding.SortCandidates(out)
	return out, folding.NoError
}

// measure returns the visual indentation width of a line.
func (s *Indent) measure(line string) (width int, blank bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			width++
		case '\t':
			width += s.opts.TabWidth - width%s.opts.TabWidth
		default:
			return width, false
		}
	}
	return width, true
}
