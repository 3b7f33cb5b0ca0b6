package folding

import "fmt"

// Edit describes one splice of the document: Removed bytes were deleted at
// Offset and Inserted bytes were put in their place.
type Edit struct {
	Offset   int
	Removed  int
	Inserted int
}

// Insertion returns the edit for inserting n bytes at offset.
func Insertion(offset, n int) Edit { return Edit{Offset: offset, Inserted: n} }

// Deletion returns the edit for deleting n bytes at offset.
func Deletion(offset, n int) Edit { return Edit{Offset: offset, Removed: n} }

// Delta is the change in document length caused by e.
func (e Edit) Delta() int { return e.Inserted - e.Removed }

// IsEmpty reports whether e changes nothing.
func (e Edit) IsEmpty() bool { return e.Removed == 0 && e.Inserted == 0 }

func (e Edit) String() string {
	return fmt.Sprintf("@%d -%d +%d", e.Offset, e.Removed, e.Inserted)
}

// Shift maps an offset taken before e to the equivalent offset after it.
// Offsets up to and including e.Offset stay put, offsets past the removed
// span move by Delta, and offsets inside the removed span collapse onto
// e.Offset.
func (e Edit) Shift(b int) int {
	switch {
	case b <= e.Offset:
		return b
	case b >= e.Offset+e.Removed:
		return b + e.Delta()
	default:
		return e.Offset
	}
}
