package navigator

// Slice is a Provider over a fixed list of items.
type Slice[T any] struct {
	Items    []T
	selected int
}

// NewSlice returns a provider over items with the first one selected.
func NewSlice[T any](items ...T) *Slice[T] {
	return &Slice[T]{Items: items}
}

// SelectedIndex returns the current selection.
func (s *Slice[T]) SelectedIndex() int { return s.selected }

// SetSelectedIndex selects i. Out-of-range indexes are ignored.
func (s *Slice[T]) SetSelectedIndex(i int) {
	if i < 0 || i >= len(s.Items) {
		return
	}
	s.selected = i
}

// Count returns the number of items.
func (s *Slice[T]) Count() int { return len(s.Items) }

// Selected returns the selected item, or false when the list is empty.
func (s *Slice[T]) Selected() (T, bool) {
	if s.selected < 0 || s.selected >= len(s.Items) {
		var zero T
		return zero, false
	}
	return s.Items[s.selected], true
}
