package doctree

import "errors"

var (
	// ErrInvalidChild is returned by [List.SetRange] and every mutator
	// built on it when a candidate child fails the list's child
	// restriction, or when attaching it would create a cycle (the
	// candidate is the receiver or one of the receiver's ancestors).
	// The rejected mutation leaves the tree unchanged.
	ErrInvalidChild = errors.New("invalid child")

	// ErrNotFound is returned by [List.Index] and [List.Remove] when the
	// given node is not a direct child of the receiver. Membership is
	// decided by node identity, never by structural equality.
	ErrNotFound = errors.New("node not found")

	// ErrNameNotFound is returned by [List.Named], [List.FindName], and
	// [List.DeleteName] when no direct child or composite-owned
	// descendant bears the requested name.
	ErrNameNotFound = errors.New("name not found")

	// ErrIndexOutOfRange is returned by positional accessors and
	// mutators when a position falls outside the valid range for the
	// operation.
	ErrIndexOutOfRange = errors.New("index out of range")
)
