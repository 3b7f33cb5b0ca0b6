package folding

import (
	"fmt"
	"iter"
	"sort"

	"go.uber.org/zap"
)

// Store owns the live fold regions of one document, ordered by ascending
// start (outer before inner on equal starts).
type Store struct {
	regions []*Region
	length  int

	// collapsed spans, rebuilt lazily for CollapsedAt
	spans []span
	dirty bool

	log     *Logger
	metrics *Metrics
}

// span is a disjoint piece of collapsed text attributed to the outermost
// collapsed region covering it.
type span struct {
	start, end int
	owner      *Region
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.log = NewLogger(logger) }
}

// WithMetrics records reconciliation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore returns an empty store for a document of the given length.
func NewStore(length int, opts ...Option) *Store {
	if length < 0 {
		length = 0
	}
	s := &Store{length: length, dirty: true}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = NewLogger(nil)
	}
	return s
}

// DocumentLength returns the document length the store is tracking.
func (s *Store) DocumentLength() int { return s.length }

// Count returns the number of live regions.
func (s *Store) Count() int { return len(s.regions) }

// Regions returns a copy of the live regions in ascending start order.
func (s *Store) Regions() []*Region {
	out := make([]*Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// All iterates over the live regions in ascending start order. The store
// must not be modified during iteration.
func (s *Store) All() iter.Seq[*Region] {
	return func(yield func(*Region) bool) {
		for _, r := range s.regions {
			if !yield(r) {
				return
			}
		}
	}
}

// ApplyEdit moves every region boundary through e. Boundaries inside a
// deleted span land on e.Offset, so a region swallowed by a deletion ends up
// empty and is evicted by the next Reconcile.
func (s *Store) ApplyEdit(e Edit) error {
	if e.Offset < 0 || e.Removed < 0 || e.Inserted < 0 || e.Offset+e.Removed > s.length {
		return fmt.Errorf("%w: %s (document length %d)", ErrInvalidEdit, e, s.length)
	}
	if e.IsEmpty() {
		return nil
	}
	for _, r := range s.regions {
		r.start = e.Shift(r.start)
		r.end = e.Shift(r.end)
		if r.end < r.start {
			r.end = r.start
		}
	}
	s.length += e.Delta()
	s.markDirty()
	s.log.EditApplied(e, s.length)
	return nil
}

// Create adds a region over [start, end) that no strategy proposed. It is
// subject to eviction by the next Reconcile like any other region.
func (s *Store) Create(start, end int, name string) (*Region, error) {
	if start < 0 || end > s.length || start >= end {
		return nil, fmt.Errorf("%w: [%d,%d) (document length %d)", ErrInvalidRange, start, end, s.length)
	}
	r := &Region{start: start, end: end, name: name, valid: true, store: s}
	i := sort.Search(len(s.regions), func(i int) bool {
		o := s.regions[i]
		return o.start > start || (o.start == start && o.end < end)
	})
	s.regions = append(s.regions, nil)
	copy(s.regions[i+1:], s.regions[i:])
	s.regions[i] = r
	s.markDirty()
	return r, nil
}

// Remove evicts r. It returns false if r does not belong to the store.
func (s *Store) Remove(r *Region) bool {
	if r == nil || r.store != s {
		return false
	}
	for i, o := range s.regions {
		if o == r {
			s.regions = append(s.regions[:i], s.regions[i+1:]...)
			r.invalidate()
			s.markDirty()
			return true
		}
	}
	return false
}

// Clear evicts every region.
func (s *Store) Clear() {
	for _, r := range s.regions {
		r.invalidate()
	}
	s.regions = nil
	s.markDirty()
}

// SetAllCollapsed folds (true) or unfolds (false) every region.
func (s *Store) SetAllCollapsed(v bool) {
	for _, r := range s.regions {
		r.collapsed = v
	}
	s.markDirty()
}

// CollapsedAt returns the outermost collapsed region containing offset.
// Lookup is a binary search over the disjoint collapsed spans.
func (s *Store) CollapsedAt(offset int) (*Region, bool) {
	spans := s.collapsedSpans()
	i := sort.Search(len(spans), func(i int) bool { return spans[i].start > offset }) - 1
	if i < 0 || offset >= spans[i].end {
		return nil, false
	}
	return spans[i].owner, true
}

// IsHidden reports whether offset lies inside a collapsed region.
func (s *Store) IsHidden(offset int) bool {
	_, ok := s.CollapsedAt(offset)
	return ok
}

// Containing returns every region containing offset, outermost first.
func (s *Store) Containing(offset int) []*Region {
	var out []*Region
	for _, r := range s.regions {
		if r.start > offset {
			break
		}
		if r.Contains(offset) {
			out = append(out, r)
		}
	}
	return out
}

// Innermost returns the deepest region containing offset.
func (s *Store) Innermost(offset int) (*Region, bool) {
	all := s.Containing(offset)
	if len(all) == 0 {
		return nil, false
	}
	return all[len(all)-1], true
}

// StartingAt returns the regions whose start is exactly offset.
func (s *Store) StartingAt(offset int) []*Region {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].start >= offset })
	var out []*Region
	for ; i < len(s.regions) && s.regions[i].start == offset; i++ {
		out = append(out, s.regions[i])
	}
	return out
}

// NextStart returns the start of the first region beginning after offset,
// or -1 if there is none.
func (s *Store) NextStart(offset int) int {
	i := sort.Search(len(s.regions), func(i int) bool { return s.regions[i].start > offset })
	if i == len(s.regions) {
		return -1
	}
	return s.regions[i].start
}

func (s *Store) markDirty() { s.dirty = true }

func (s *Store) collapsedSpans() []span {
	if !s.dirty {
		return s.spans
	}
	s.spans = s.spans[:0]
	for _, r := range s.regions {
		if !r.collapsed || r.start >= r.end {
			continue
		}
		n := len(s.spans)
		if n > 0 && r.start < s.spans[n-1].end {
			if r.end <= s.spans[n-1].end {
				continue // nested in a collapsed region already
			}
			// overlaps the previous span without nesting: only the tail is new
			s.spans = append(s.spans, span{start: s.spans[n-1].end, end: r.end, owner: r})
			continue
		}
		s.spans = append(s.spans, span{start: r.start, end: r.end, owner: r})
	}
	s.dirty = false
	return s.spans
}
