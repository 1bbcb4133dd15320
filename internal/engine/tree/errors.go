package tree

import "errors"

// Errors returned by tree operations.
var (
	// ErrIndexOutOfRange is returned when an index does not address a
	// node, insertion point, or child expression.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNilNode is returned when a nil node is passed to a mutation.
	ErrNilNode = errors.New("node cannot be nil")
)
