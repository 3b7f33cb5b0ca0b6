package folding

import (
	"fmt"
	"sort"
)

// Candidate is a fold region proposed by a Strategy. Start and End are byte
// offsets into the snapshot the strategy ran on.
type Candidate struct {
	Start            int    `json:"start"`
	End              int    `json:"end"`             // exclusive
	Name             string `json:"name,omitempty"`  // label shown while collapsed
	DefaultCollapsed bool   `json:"defaultCollapsed,omitempty"`
}

// Len returns the number of bytes covered by c.
func (c Candidate) Len() int { return c.End - c.Start }

func (c Candidate) String() string {
	if c.Name == "" {
		return fmt.Sprintf("[%d,%d)", c.Start, c.End)
	}
	return fmt.Sprintf("[%d,%d) %q", c.Start, c.End, c.Name)
}

// SortCandidates puts cands into the order Reconcile expects: ascending
// start, and on equal starts the enclosing (longer) candidate first.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Start != cands[j].Start {
			return cands[i].Start < cands[j].Start
		}
		return cands[i].End > cands[j].End
	})
}

// validateCandidates checks the whole list before Reconcile touches the store.
func validateCandidates(cands []Candidate, length int) error {
	for i, c := range cands {
		if c.Start < 0 || c.End > length || c.Start >= c.End {
			return fmt.Errorf("%w: #%d %s (document length %d)", ErrInvalidCandidate, i, c, length)
		}
		if i == 0 {
			continue
		}
		prev := cands[i-1]
		if c.Start < prev.Start || (c.Start == prev.Start && c.End > prev.End) {
			return fmt.Errorf("%w: #%d %s after %s", ErrUnsortedCandidates, i, c, prev)
		}
	}
	return nil
}
