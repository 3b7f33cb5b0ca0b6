package folding

import "math"

// NoError is the first-error offset of a strategy that analyzed the whole
// document; every candidate it returns is authoritative.
const NoError = -1

// Result summarizes one Reconcile pass.
type Result struct {
	Matched   int // live regions that kept their identity
	Created   int // candidates that became new regions
	Evicted   int // live regions no candidate claimed
	Preserved int // live regions past the error offset, left untouched
	Ignored   int // candidates past the error offset
}

// Reconcile merges cands into the store.
//
// cands must be sorted as SortCandidates does and lie inside the document;
// otherwise Reconcile returns ErrInvalidCandidate or ErrUnsortedCandidates
// and leaves the store unchanged.
//
// firstErrorOffset marks where the strategy's analysis stopped being
// reliable. Candidates starting at or after it are ignored and live regions
// starting at or after it are neither matched nor evicted. Pass NoError (or
// any offset at or past the document end) when the whole list is
// authoritative.
//
// Matching is positional: live regions and candidates are walked forward
// together and a live region is reused when its start equals the
// candidate's start, or when it is the only unvisited live region before
// the candidate and still covers the candidate's start. A reused region
// takes the candidate's offsets and name but keeps its collapsed flag.
func (s *Store) Reconcile(cands []Candidate, firstErrorOffset int) (Result, error) {
	if err := validateCandidates(cands, s.length); err != nil {
		s.metrics.rejected()
		s.log.Rejected(err, len(cands))
		return Result{}, err
	}

	cutoff := firstErrorOffset
	if cutoff < 0 || cutoff >= s.length {
		cutoff = math.MaxInt
	}

	var res Result
	old := s.regions
	next := make([]*Region, 0, len(old)+len(cands))
	evict := func(r *Region) {
		r.invalidate()
		res.Evicted++
	}

	i := 0
	for n, c := range cands {
		if c.Start >= cutoff {
			res.Ignored = len(cands) - n
			break
		}
		j := i
		for j < len(old) && old[j].start < c.Start {
			j++
		}
		if drifted(old, i, j, c) {
			r := old[i]
			i++
			r.start = c.Start
			r.end = c.End
			r.name = c.Name
			next = append(next, r)
			res.Matched++
			continue
		}
		for ; i < j; i++ {
			evict(old[i])
		}
		// regions emptied by deletions are never reused
		for i < len(old) && old[i].start == c.Start && old[i].start >= old[i].end {
			evict(old[i])
			i++
		}
		if i < len(old) && old[i].start == c.Start {
			r := old[i]
			i++
			r.end = c.End
			r.name = c.Name
			next = append(next, r)
			res.Matched++
			continue
		}
		next = append(next, &Region{
			start:     c.Start,
			end:       c.End,
			name:      c.Name,
			collapsed: c.DefaultCollapsed,
			valid:     true,
			store:     s,
		})
		res.Created++
	}

	for ; i < len(old); i++ {
		if old[i].start >= cutoff {
			break
		}
		evict(old[i])
	}
	res.Preserved = len(old) - i
	next = append(next, old[i:]...)

	s.regions = next
	s.markDirty()
	s.metrics.observe(res, len(next))
	s.log.Reconciled(res, firstErrorOffset, len(next))
	return res, nil
}

// drifted reports whether old[i] is the counterpart of c even though their
// starts differ. old[i:j] are the unvisited live regions starting before c.
// An insertion at a region's start leaves the live start in place while the
// strategy sees the opener move right, so a lone live region that still
// covers c.Start pairs with c unless another live region starts exactly
// there.
func drifted(old []*Region, i, j int, c Candidate) bool {
	if j-i != 1 || c.Start >= old[i].end {
		return false
	}
	return j == len(old) || old[j].start != c.Start
}
