package weft

import (
	"errors"
	"fmt"
)

// The error kinds of this package. Every error returned by an API in this
// package wraps exactly one of them, so callers can classify failures with
// errors.Is without parsing messages.
var (
	// ErrInvalidPath means a path has no corresponding node in the tree it
	// was evaluated against.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPathOutOfRange is the Get failure: a path component indexed past
	// the end of an element's children, or descended into a text leaf.
	// It wraps ErrInvalidPath.
	ErrPathOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidPath)

	// ErrInvalidOperation means an operation's preconditions do not hold
	// against the current tree: a remove at a nonexistent path, a split at
	// an out-of-range position, a merge of unlike siblings.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotAncestor is returned by Path.Relative when the claimed ancestor
	// is not actually a prefix of the path.
	ErrNotAncestor = errors.New("not an ancestor path")

	// ErrRootPath is returned by parent and previous-sibling queries on the
	// empty (root) path.
	ErrRootPath = errors.New("root path")
)
