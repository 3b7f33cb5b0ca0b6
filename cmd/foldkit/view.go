package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"foldkit/internal/folding"
	"foldkit/internal/textutil"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("238"))
)

// isTerminal reports whether w is a terminal worth styling.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type renderer struct {
	placeholder string
	styled      bool
}

func (r renderer) label(reg *folding.Region) string {
	s := reg.Name()
	if s == "" {
		s = r.placeholder
	}
	if r.styled {
		return placeholderStyle.Render(s)
	}
	return s
}

func (r renderer) title(s string) string {
	if r.styled {
		return titleStyle.Render(s)
	}
	return s
}

// folded returns text with every outermost collapsed region replaced by its
// label. Regions nested inside a collapsed one are hidden with it.
func (r renderer) folded(text string, store *folding.Store) string {
	var b strings.Builder
	pos := 0
	for reg := range store.All() {
		if !reg.Collapsed() || reg.Len() <= 0 || reg.Start() < pos {
			continue
		}
		b.WriteString(text[pos:reg.Start()])
		b.WriteString(r.label(reg))
		pos = reg.End()
	}
	b.WriteString(text[pos:])
	return b.String()
}

// writeTable prints one row per region with 1-based line ranges.
func writeTable(w io.Writer, store *folding.Store, lines *textutil.Lines, firstErrorOffset int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLINES\tSPAN\tBYTES\tSTATE\tNAME")
	i := 0
	for reg := range store.All() {
		i++
		first, last := lines.Span(reg.Start(), reg.End())
		state := "expanded"
		if reg.Collapsed() {
			state = "collapsed"
		}
		span := lines.LineCount(reg.Start(), reg.End())
		fmt.Fprintf(tw, "%d\t%d-%d\t%d\t[%d,%d)\t%s\t%s\n", i, first, last, span, reg.Start(), reg.End(), state, reg.Name())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "regions: %d, first error: %s\n", store.Count(), describeError(lines, firstErrorOffset, store.DocumentLength()))
	return nil
}

func describeError(lines *textutil.Lines, offset, length int) string {
	if offset < 0 || offset >= length {
		return "none"
	}
	return fmt.Sprintf("line %d (offset %d)", lines.LineOf(offset), offset)
}
