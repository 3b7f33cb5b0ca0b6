package folding

import "fmt"

// Document is the read-only view of a text buffer that strategies scan.
type Document interface {
	Text() string
	Len() int
}

// Snapshot is an immutable Document backed by a string.
type Snapshot string

// Text returns the snapshot contents.
func (s Snapshot) Text() string { return string(s) }

// Len returns the snapshot length in bytes.
func (s Snapshot) Len() int { return len(s) }

// Strategy derives fold candidates from a document.
//
// Compute must be a pure function of doc. It returns candidates ordered as
// SortCandidates orders them, and the offset of the first spot its analysis
// could not get past (NoError when there was none).
type Strategy interface {
	Compute(doc Document) (cands []Candidate, firstErrorOffset int)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(doc Document) ([]Candidate, int)

// Compute calls f(doc).
func (f StrategyFunc) Compute(doc Document) ([]Candidate, int) { return f(doc) }

// Update runs s over doc and reconciles the result into store.
func Update(store *Store, s Strategy, doc Document) (Result, error) {
	if store.length != doc.Len() {
		return Result{}, fmt.Errorf("%w: store %d, document %d", ErrLengthMismatch, store.length, doc.Len())
	}
	cands, firstErrorOffset := s.Compute(doc)
	return store.Reconcile(cands, firstErrorOffset)
}
