// Package diff derives fold-store edits from whole-text rewrites and renders
// unified diffs of folded views. It uses github.com/pmezard/go-difflib/difflib
// for both: SequenceMatcher opcodes become edits, and UnifiedDiff produces
// classic patches (---/+++ headers, @@ hunks).
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"foldkit/internal/folding"
)

// Options controls patch generation behavior.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of context lines in unified hunks.
	// If 0, default to 3.
	Context int
}

// Unified produces a classic unified patch for a↦b.
// Returns the patch body and a flag indicating it was omitted due to size.
// Identical inputs produce an empty body.
func Unified(aName, bName string, a, b []byte, opt Options) (body string, oversize bool) {
	if opt.MaxBytes > 0 && (len(a)+len(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return omitted(aName, bName), false
	}
	return s, false
}

// Edits returns the edits that turn oldText into newText, in application order.
// Each edit is expressed in the coordinates left by the edits before it, so
// feeding them one by one to Store.ApplyEdit keeps regions aligned with newText.
//
// Matching is line-based; within a replaced block the common byte prefix
// and suffix are trimmed so boundaries on untouched bytes do not move.
func Edits(oldText, newText string) []folding.Edit {
	if oldText == newText {
		return nil
	}
	a := splitLinesKeepNL(oldText)
	b := splitLinesKeepNL(newText)
	aOff := prefixOffsets(a)
	bOff := prefixOffsets(b)

	var (
		out   []folding.Edit
		delta int
	)
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		removed := oldText[aOff[op.I1]:aOff[op.I2]]
		inserted := newText[bOff[op.J1]:bOff[op.J2]]
		pre, suf := commonAffixes(removed, inserted)

		e := folding.Edit{
			Offset:   aOff[op.I1] + delta + pre,
			Removed:  len(removed) - pre - suf,
			Inserted: len(inserted) - pre - suf,
		}
		if e.IsEmpty() {
			continue
		}
		out = append(out, e)
		delta += e.Delta()
	}
	return out
}

// prefixOffsets returns the byte offset of every line plus the total length.
func prefixOffsets(lines []string) []int {
	out := make([]int, len(lines)+1)
	for i, l := range lines {
		out[i+1] = out[i] + len(l)
	}
	return out
}

// commonAffixes returns the lengths of the shared prefix and the shared
// suffix of a and b. The two never overlap.
func commonAffixes(a, b string) (pre, suf int) {
	n := min(len(a), len(b))
	for pre < n && a[pre] == b[pre] {
		pre++
	}
	for suf < n-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}
	return pre, suf
}

// splitLinesKeepNL splits into lines and keeps newline characters,
// which produces better unified hunks. A trailing newline does not yield
// an empty last line.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
