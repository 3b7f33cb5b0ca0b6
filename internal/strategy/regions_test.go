package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldkit/internal/folding"
)

// span returns the offsets of the first occurrence of from through the end
// of the first occurrence of to after it.
func span(t *testing.T, text, from, to string) (int, int) {
	t.Helper()
	start := strings.Index(text, from)
	require.GreaterOrEqual(t, start, 0, "missing %q", from)
	rel := strings.Index(text[start:], to)
	require.GreaterOrEqual(t, rel, 0, "missing %q", to)
	return start, start + rel + len(to)
}

func TestRegions_LineMarkers(t *testing.T) {
	text := "package x\n\n// region Setup\nvar a = 1\n// endregion Setup\n\nfunc f() {}\n"
	cands, errOff := NewRegions(RegionOptions{}).Compute(folding.Snapshot(text))

	start, end := span(t, text, "// region Setup", "// endregion Setup")
	assert.Equal(t, folding.NoError, errOff)
	assert.Equal(t, []folding.Candidate{{Start: start, End: end, Name: "Setup"}}, cands)
}

func TestRegions_HashAndBlockMarkers(t *testing.T) {
	text := "#region Public Methods\nvoid A() {}\n#endregion\n" +
		"/* region: helpers */ x(); /* endregion: helpers */\n"
	cands, errOff := NewRegions(RegionOptions{DefaultCollapsed: true}).Compute(folding.Snapshot(text))
	require.Equal(t, folding.NoError, errOff)
	require.Len(t, cands, 2)

	s1, e1 := span(t, text, "#region Public", "#endregion")
	s2, e2 := span(t, text, "/* region: helpers", "/* endregion: helpers */")
	assert.Equal(t, folding.Candidate{Start: s1, End: e1, Name: "Public Methods", DefaultCollapsed: true}, cands[0])
	assert.Equal(t, folding.Candidate{Start: s2, End: e2, Name: "helpers", DefaultCollapsed: true}, cands[1])
}

func TestRegions_NestedAreSortedOuterFirst(t *testing.T) {
	text := "// region outer\n  // region inner\n  x\n  // endregion inner\n// endregion outer\n"
	cands, errOff := NewRegions(RegionOptions{}).Compute(folding.Snapshot(text))
	require.Equal(t, folding.NoError, errOff)
	require.Len(t, cands, 2)
	assert.Equal(t, "outer", cands[0].Name)
	assert.Equal(t, "inner", cands[1].Name)
	assert.True(t, cands[0].Start < cands[1].Start && cands[1].End <= cands[0].End)
}

func TestRegions_CRLF(t *testing.T) {
	text := "// region A\r\nx\r\n// endregion\r\n"
	cands, errOff := NewRegions(RegionOptions{}).Compute(folding.Snapshot(text))
	require.Equal(t, folding.NoError, errOff)
	require.Len(t, cands, 1)
	assert.Equal(t, "A", cands[0].Name)
	// the fold stops before the line terminator
	assert.Equal(t, strings.Index(text, "// endregion")+len("// endregion"), cands[0].End)
}

func TestRegions_UnnamedRegionLabel(t *testing.T) {
	cands, _ := NewRegions(RegionOptions{}).Compute(folding.Snapshot("#region\nx\n#endregion\n"))
	require.Len(t, cands, 1)
	assert.Equal(t, "#region", cands[0].Name)
}

func TestRegions_Errors(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCands int
		errAt     string
	}{
		{
			name:      "stray endregion",
			text:      "// region a\n// endregion a\nx\n// endregion b\n",
			wantCands: 1,
			errAt:     "// endregion b",
		},
		{
			name:      "unclosed at eof",
			text:      "// region a\n// endregion a\n// region b\nx\n",
			wantCands: 1,
			errAt:     "// region b",
		},
		{
			name:      "mismatched name",
			text:      "// region a\nx\n// endregion b\n",
			wantCands: 0,
			errAt:     "// region a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, errOff := NewRegions(RegionOptions{}).Compute(folding.Snapshot(tt.text))
			assert.Len(t, cands, tt.wantCands)
			assert.Equal(t, strings.Index(tt.text, tt.errAt), errOff)
		})
	}
}

func TestRegions_NoMarkers(t *testing.T) {
	cands, errOff := NewRegions(RegionOptions{}).Compute(folding.Snapshot("regional := 1 // not a marker\n"))
	assert.Empty(t, cands)
	assert.Equal(t, folding.NoError, errOff)
}

func TestRegions_FeedsStore(t *testing.T) {
	text := "// region a\nx\n// endregion a\n// region b\ny\n"
	doc := folding.Snapshot(text)
	store := folding.NewStore(doc.Len())

	res, err := folding.Update(store, NewRegions(RegionOptions{}), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, store.Count())
}
