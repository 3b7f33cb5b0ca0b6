package folding

import "fmt"

// Region is a live fold owned by a Store. Its offsets follow document edits
// delivered through Store.ApplyEdit.
type Region struct {
	start     int
	end       int
	name      string
	collapsed bool
	valid     bool
	store     *Store
}

// Start returns the current start offset.
func (r *Region) Start() int { return r.start }

// End returns the current (exclusive) end offset.
func (r *Region) End() int { return r.end }

// Len returns the number of bytes the region covers.
func (r *Region) Len() int { return r.end - r.start }

// Name returns the label shown while the region is collapsed.
func (r *Region) Name() string { return r.name }

// Collapsed reports whether the region is folded.
func (r *Region) Collapsed() bool { return r.collapsed }

// Valid reports whether the region is still part of its store. Regions
// evicted by Reconcile, Remove or Clear are no longer valid.
func (r *Region) Valid() bool { return r.valid }

// SetCollapsed folds or unfolds the region.
func (r *Region) SetCollapsed(v bool) {
	if r.collapsed == v {
		return
	}
	r.collapsed = v
	if r.store != nil {
		r.store.markDirty()
	}
}

// Toggle flips the collapsed flag and returns the new value.
func (r *Region) Toggle() bool {
	r.SetCollapsed(!r.collapsed)
	return r.collapsed
}

// Contains reports whether offset lies in [Start, End).
func (r *Region) Contains(offset int) bool {
	return r.start <= offset && offset < r.end
}

func (r *Region) String() string {
	state := "open"
	if r.collapsed {
		state = "collapsed"
	}
	if !r.valid {
		state = "evicted"
	}
	return fmt.Sprintf("[%d,%d) %q %s", r.start, r.end, r.name, state)
}

func (r *Region) invalidate() {
	r.valid = false
	r.store = nil
}
