package weft

import "slices"

// An Operation is one atomic, invertible edit record. The set of variants is
// closed; Apply, Invert, and the transform family all switch over it
// exhaustively, so a new variant cannot be added without every consumer
// taking a position on it.
//
// Each variant carries exactly the data needed to apply it and to derive its
// inverse without consulting the tree again: removals carry the removed
// node, text removals the removed text, merges the fold position and the
// folded node's properties.
type Operation interface {
	// Invert returns the operation that exactly undoes this one, so that
	// applying an operation and then its inverse restores the previous
	// tree.
	Invert() Operation

	operation()
}

// InsertNode inserts Node as a new child at Path.
type InsertNode struct {
	Path Path
	Node Node
}

// RemoveNode deletes the node at Path. Node holds the removed subtree so the
// record stays invertible.
type RemoveNode struct {
	Path Path
	Node Node
}

// SetNode merges NewProps over the properties of the node at Path; a nil
// value deletes its key. Props holds the prior values of the touched keys.
type SetNode struct {
	Path     Path
	Props    Props
	NewProps Props
}

// MergeNode folds the node at Path into its previous sibling. Position is
// where the seam lands in the combined node (the previous sibling's text
// length or child count) and Props are the folded node's properties; both
// exist for the inverse split.
type MergeNode struct {
	Path     Path
	Position int
	Props    Props
}

// SplitNode divides the node at Path into two siblings at Position (a byte
// offset for text leaves, a child index for elements). Props become the
// properties of the newly created later sibling.
type SplitNode struct {
	Path     Path
	Position int
	Props    Props
}

// MoveNode relocates the subtree at Path to NewPath. NewPath is interpreted
// against the tree as it stands after the subtree has been lifted out.
type MoveNode struct {
	Path    Path
	NewPath Path
}

// InsertText splices Text into the leaf at Path at byte offset Offset.
type InsertText struct {
	Path   Path
	Offset int
	Text   string
}

// RemoveText deletes Text from the leaf at Path at byte offset Offset.
type RemoveText struct {
	Path   Path
	Offset int
	Text   string
}

// SetSelection records a pending-selection change. It never touches the
// tree; only the selection-tracking layer reacts to it. A nil New clears
// the selection, and Old holds what it replaced.
type SetSelection struct {
	Old *Range
	New *Range
}

func (*InsertNode) operation()   {}
func (*RemoveNode) operation()   {}
func (*SetNode) operation()      {}
func (*MergeNode) operation()    {}
func (*SplitNode) operation()    {}
func (*MoveNode) operation()     {}
func (*InsertText) operation()   {}
func (*RemoveText) operation()   {}
func (*SetSelection) operation() {}

///
/// inversion
///

func (op *InsertNode) Invert() Operation {
	return &RemoveNode{Path: slices.Clone(op.Path), Node: op.Node}
}

func (op *RemoveNode) Invert() Operation {
	return &InsertNode{Path: slices.Clone(op.Path), Node: op.Node}
}

func (op *SetNode) Invert() Operation {
	return &SetNode{Path: slices.Clone(op.Path), Props: op.NewProps, NewProps: op.Props}
}

func (op *MergeNode) Invert() Operation {
	// the seam reopens where the folded node used to sit
	prev, _ := op.Path.Previous()
	return &SplitNode{Path: prev, Position: op.Position, Props: op.Props}
}

func (op *SplitNode) Invert() Operation {
	next, _ := op.Path.Next()
	return &MergeNode{Path: next, Position: op.Position, Props: op.Props}
}

func (op *MoveNode) Invert() Operation {
	if op.Path.Equal(op.NewPath) {
		return &MoveNode{Path: slices.Clone(op.Path), NewPath: slices.Clone(op.NewPath)}
	}
	if op.Path.IsSibling(op.NewPath) {
		return &MoveNode{Path: slices.Clone(op.NewPath), NewPath: slices.Clone(op.Path)}
	}
	// the move shifted its own source and destination; run both endpoints
	// through the move to find where the node landed and where the gap was
	inversePath, _ := op.Path.Transform(op)
	next, _ := op.Path.Next()
	inverseNewPath, _ := next.Transform(op)
	return &MoveNode{Path: inversePath, NewPath: inverseNewPath}
}

func (op *InsertText) Invert() Operation {
	return &RemoveText{Path: slices.Clone(op.Path), Offset: op.Offset, Text: op.Text}
}

func (op *RemoveText) Invert() Operation {
	return &InsertText{Path: slices.Clone(op.Path), Offset: op.Offset, Text: op.Text}
}

func (op *SetSelection) Invert() Operation {
	return &SetSelection{Old: op.New, New: op.Old}
}
