// Package navigator cycles a selection through a bounded list of
// alternatives, such as the overloads offered for a call site.
package navigator

// Advance moves current by delta within [0, count), wrapping in either
// direction. With no alternatives (count <= 0) it returns current unchanged.
func Advance(current, delta, count int) int {
	if count <= 0 {
		return current
	}
	return ((current+delta)%count + count) % count
}

// ShowControls reports whether previous/next controls are worth showing:
// with fewer than two alternatives there is nothing to cycle through.
func ShowControls(count int) bool { return count >= 2 }

// Provider exposes the selection the navigator drives.
type Provider interface {
	SelectedIndex() int
	SetSelectedIndex(int)
	Count() int
}

// Navigator applies relative index changes to a Provider.
type Navigator struct {
	Provider Provider
}

// New returns a Navigator over p.
func New(p Provider) *Navigator { return &Navigator{Provider: p} }

// ChangeIndex moves the selection by delta, usually +1 or -1. It does
// nothing without a provider or alternatives.
func (n *Navigator) ChangeIndex(delta int) {
	p := n.Provider
	if p == nil || p.Count() <= 0 {
		return
	}
	p.SetSelectedIndex(Advance(p.SelectedIndex(), delta, p.Count()))
}

// Next selects the following alternative.
func (n *Navigator) Next() { n.ChangeIndex(+1) }

// Previous selects the preceding alternative.
func (n *Navigator) Previous() { n.ChangeIndex(-1) }
