package strategy

// Region markers fold explicitly delimited sections of a file:
//
//	// region Setup
//	... code ...
//	// endregion Setup
//
// Supported forms (case-insensitive):
//   - Line comments:  "// region NAME"  |  "// region: NAME"
//   - Preprocessor:   "#region NAME"     |  "#endregion"        (C#/TS style)
//   - Block markers:  "/* region: NAME */" | "/* endregion: NAME */"
//
// Regions nest. An endregion closes the innermost open region; when both
// carry a name the names must agree.

import (
	"regexp"
	"sort"
	"strings"

	"foldkit/internal/folding"
)

var (
	reLineC = regexp.MustCompile(`(?im)^[ \t]*(//[ \t]*(region|endregion)\b[ \t]*:?[ \t]*([^\r\n]*?))[ \t]*\r?$`)
	reHash  = regexp.MustCompile(`(?im)^[ \t]*(#[ \t]*(region|endregion)\b[ \t]*:?[ \t]*([^\r\n]*?))[ \t]*\r?$`)
	reBlock = regexp.MustCompile(`(?is)/\*\s*(region|endregion)\b\s*:?\s*([A-Za-z0-9_.\-]*)\s*\*/`)
)

// RegionOptions configures the region-marker strategy.
type RegionOptions struct {
	// DefaultCollapsed folds every region the first time it is seen.
	DefaultCollapsed bool `json:"defaultCollapsed"`
}

// Regions folds sections delimited by region/endregion markers.
type Regions struct {
	opts RegionOptions
}

// NewRegions returns a region-marker strategy.
func NewRegions(opts RegionOptions) *Regions { return &Regions{opts: opts} }

type marker struct {
	open       bool
	name       string
	start, end int // span of the marker text
}

// Compute implements folding.Strategy.
func (s *Regions) Compute(doc folding.Document) ([]folding.Candidate, int) {
	text := doc.Text()
	markers := findMarkers(text)

	var (
		out   []folding.Candidate
		stack []marker
	)
	firstError := folding.NoError
	for _, m := range markers {
		if m.open {
			stack = append(stack, m)
			continue
		}
		n := len(stack)
		if n == 0 {
			firstError = m.start
			break
		}
		top := stack[n-1]
		if m.name != "" && top.name != "" && !strings.EqualFold(m.name, top.name) {
			firstError = m.start
			break
		}
		stack = stack[:n-1]
		out = append(out, folding.Candidate{
			Start:            top.start,
			End:              m.end,
			Name:             regionLabel(top.name),
			DefaultCollapsed: s.opts.DefaultCollapsed,
		})
	}
	// regions left open are not reliable past their start
	for _, open := range stack {
		if firstError == folding.NoError || open.start < firstError {
			firstError = open.start
		}
	}
	folding.SortCandidates(out)
	return out, firstError
}

func regionLabel(name string) string {
	if name == "" {
		return "#region"
	}
	return name
}

// findMarkers collects line and block markers in document order.
func findMarkers(text string) []marker {
	var out []marker
	for _, re := range []*regexp.Regexp{reLineC, reHash} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			out = append(out, marker{
				open:  strings.EqualFold(text[m[4]:m[5]], "region"),
				name:  strings.TrimSpace(text[m[6]:m[7]]),
				start: m[2],
				end:   m[3],
			})
		}
	}
	for _, m := range reBlock.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, marker{
			open:  strings.EqualFold(text[m[2]:m[3]], "region"),
			name:  text[m[4]:m[5]],
			start: m[0],
			end:   m[1],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return dedupMarkers(out)
}

// dedupMarkers drops markers matched by more than one syntax at the same spot.
func dedupMarkers(in []marker) []marker {
	out := in[:0]
	for i, m := range in {
		if i > 0 && in[i-1].start == m.start {
			continue
		}
		out = append(out, m)
	}
	return out
}
