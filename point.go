package weft

import "slices"

// A Point is a caret position: a path to a text leaf plus a byte offset into
// its string.
type Point struct {
	Path   Path
	Offset int
}

func (pt Point) Equal(other Point) bool {
	return pt.Offset == other.Offset && pt.Path.Equal(other.Path)
}

// Compare orders points by path, breaking ties on the offset.
func (pt Point) Compare(other Point) int {
	if c := pt.Path.Compare(other.Path); c != 0 {
		return c
	}
	switch {
	case pt.Offset < other.Offset:
		return -1
	case pt.Offset > other.Offset:
		return 1
	}
	return 0
}

func (pt Point) IsBefore(other Point) bool {
	return pt.Compare(other) == -1
}

func (pt Point) IsAfter(other Point) bool {
	return pt.Compare(other) == 1
}

// Transform rebases pt across op. Structural changes delegate to
// Path.Transform; text edits in pt's own leaf shift the offset. The second
// result is false when the leaf the point lived in was removed outright.
//
// When an edit lands exactly on the point's offset, affinity picks the side:
// Forward (the default) moves the point past inserted text and onto the
// later half of a split, Backward leaves it on the earlier side, and Pinned
// keeps it put for inserts but loses it on a split at its exact position.
func (pt Point) Transform(op Operation, affinity ...Affinity) (Point, bool) {
	aff := affinityOrDefault(affinity, Forward)
	out := Point{Path: slices.Clone(pt.Path), Offset: pt.Offset}
	switch op := op.(type) {
	case *InsertNode, *MoveNode:
		return out.rebasePath(op, aff)
	case *RemoveNode:
		if op.Path.Equal(out.Path) || op.Path.IsAncestor(out.Path) {
			return Point{}, false
		}
		return out.rebasePath(op, aff)
	case *MergeNode:
		if op.Path.Equal(out.Path) {
			out.Offset += op.Position
		}
		return out.rebasePath(op, aff)
	case *SplitNode:
		if !op.Path.Equal(out.Path) {
			return out.rebasePath(op, aff)
		}
		if op.Position == out.Offset && aff == Pinned {
			return Point{}, false
		}
		if op.Position < out.Offset || (op.Position == out.Offset && aff == Forward) {
			out.Offset -= op.Position
			return out.rebasePath(op, Forward)
		}
	case *InsertText:
		if op.Path.Equal(out.Path) &&
			(op.Offset < out.Offset || (op.Offset == out.Offset && aff == Forward)) {
			out.Offset += len(op.Text)
		}
	case *RemoveText:
		if op.Path.Equal(out.Path) && op.Offset <= out.Offset {
			out.Offset -= min(out.Offset-op.Offset, len(op.Text))
		}
	case *SetNode, *SetSelection:
		// nothing moves
	}
	return out, true
}

func (pt Point) rebasePath(op Operation, aff Affinity) (Point, bool) {
	p, ok := pt.Path.Transform(op, aff)
	if !ok {
		return Point{}, false
	}
	pt.Path = p
	return pt, true
}
