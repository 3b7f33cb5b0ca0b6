// Package document provides a plain in-memory text buffer. Every mutation
// returns the folding.Edit describing it; the owner passes that edit to the
// fold store before the next recomputation.
package document

import (
	"fmt"
	"strings"

	"foldkit/internal/folding"
)

// Buffer is a mutable text buffer addressed by byte offsets.
type Buffer struct {
	text string
}

var _ folding.Document = (*Buffer)(nil)

// New returns a buffer holding text.
func New(text string) *Buffer { return &Buffer{text: text} }

// Text returns the current contents.
func (b *Buffer) Text() string { return b.text }

// Len returns the length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Snapshot returns an immutable copy of the current contents.
func (b *Buffer) Snapshot() folding.Snapshot { return folding.Snapshot(b.text) }

// Replace removes removeLen bytes at offset and inserts text there.
func (b *Buffer) Replace(offset, removeLen int, text string) (folding.Edit, error) {
	if offset < 0 || removeLen < 0 || offset+removeLen > len(b.text) {
		return folding.Edit{}, fmt.Errorf("%w: replace %d bytes at %d (length %d)",
			folding.ErrInvalidEdit, removeLen, offset, len(b.text))
	}
	var sb strings.Builder
	sb.Grow(len(b.text) - removeLen + len(text))
	sb.WriteString(b.text[:offset])
	sb.WriteString(text)
	sb.WriteString(b.text[offset+removeLen:])
	b.text = sb.String()
	return folding.Edit{Offset: offset, Removed: removeLen, Inserted: len(text)}, nil
}

// Insert puts text at offset.
func (b *Buffer) Insert(offset int, text string) (folding.Edit, error) {
	return b.Replace(offset, 0, text)
}

// Delete removes n bytes at offset.
func (b *Buffer) Delete(offset, n int) (folding.Edit, error) {
	return b.Replace(offset, n, "")
}

// SetText replaces the whole contents.
func (b *Buffer) SetText(text string) folding.Edit {
	e := folding.Edit{Offset: 0, Removed: len(b.text), Inserted: len(text)}
	b.text = text
	return e
}
