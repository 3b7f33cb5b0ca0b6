package folding

import "errors"

var (
	// ErrInvalidCandidate is returned when a candidate's range is empty,
	// inverted, or outside the document.
	ErrInvalidCandidate = errors.New("invalid fold candidate")

	// ErrUnsortedCandidates is returned when candidates are not ordered by
	// start offset (outer before inner on equal starts).
	ErrUnsortedCandidates = errors.New("fold candidates not sorted")

	// ErrInvalidEdit is returned when an edit does not fit the document.
	ErrInvalidEdit = errors.New("edit outside document")

	// ErrInvalidRange is returned by Store.Create for an unusable range.
	ErrInvalidRange = errors.New("invalid fold range")

	// ErrLengthMismatch means the store missed an edit: its tracked length no
	// longer matches the document handed to Update.
	ErrLengthMismatch = errors.New("store length does not match document")
)
