package weft

import (
	"fmt"
	"slices"
)

// A Path addresses a node by the sibling index taken at each depth while
// descending from the root. The empty path addresses the root itself. Paths
// are plain values: they carry no reference to a tree and only mean something
// against the snapshot they were computed from.
type Path []int

///
/// queries
///

func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// Compare orders two paths by document order. An ancestor compares equal to
// its own descendants: only the shared depth is compared, which is what makes
// Point comparison (path, then offset) line up with document order.
func (p Path) Compare(q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		if p[i] < q[i] {
			return -1
		}
		if p[i] > q[i] {
			return 1
		}
	}
	return 0
}

func (p Path) IsBefore(q Path) bool {
	return p.Compare(q) == -1
}

func (p Path) IsAfter(q Path) bool {
	return p.Compare(q) == 1
}

// IsAncestor reports whether p is a proper ancestor of q: a strict prefix.
func (p Path) IsAncestor(q Path) bool {
	return len(p) < len(q) && slices.Equal(p, q[:len(p)])
}

// IsParent reports whether p is the immediate parent of q.
func (p Path) IsParent(q Path) bool {
	return len(p)+1 == len(q) && slices.Equal(p, q[:len(p)])
}

// IsChild reports whether p is an immediate child of q.
func (p Path) IsChild(q Path) bool {
	return q.IsParent(p)
}

// IsSibling reports whether p and q share a parent and differ in their final
// index. A path is not its own sibling, and the root has none.
func (p Path) IsSibling(q Path) bool {
	if len(p) == 0 || len(p) != len(q) {
		return false
	}
	last := len(p) - 1
	return p[last] != q[last] && slices.Equal(p[:last], q[:last])
}

// EndsBefore reports whether p ends at an earlier sibling index than the
// node on q's ancestor chain at p's depth: the two agree up to p's last
// component, where p is strictly smaller.
func (p Path) EndsBefore(q Path) bool {
	i := len(p) - 1
	if i < 0 || len(q) < len(p) {
		return false
	}
	return p[i] < q[i] && slices.Equal(p[:i], q[:i])
}

// Common returns the longest shared prefix of p and q.
func (p Path) Common(q Path) Path {
	common := Path{}
	for i := 0; i < len(p) && i < len(q); i++ {
		if p[i] != q[i] {
			break
		}
		common = append(common, p[i])
	}
	return common
}

// Relative strips ancestor from the front of p. The ancestor may equal p, in
// which case the result is the empty path.
func (p Path) Relative(ancestor Path) (Path, error) {
	if !ancestor.IsAncestor(p) && !ancestor.Equal(p) {
		return nil, fmt.Errorf("%w: %v is not above %v", ErrNotAncestor, ancestor, p)
	}
	return slices.Clone(p[len(ancestor):]), nil
}

func (p Path) Parent() (Path, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: the root has no parent", ErrRootPath)
	}
	return slices.Clone(p[:len(p)-1]), nil
}

// Next returns the path of the sibling after p.
func (p Path) Next() (Path, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: the root has no siblings", ErrRootPath)
	}
	next := slices.Clone(p)
	next[len(next)-1]++
	return next, nil
}

// Previous returns the path of the sibling before p.
func (p Path) Previous() (Path, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: the root has no siblings", ErrRootPath)
	}
	if p[len(p)-1] == 0 {
		return nil, fmt.Errorf("%w: %v is a first child", ErrInvalidPath, p)
	}
	prev := slices.Clone(p)
	prev[len(prev)-1]--
	return prev, nil
}

///
/// transform
///

// Transform rebases p to stay valid after op has been applied to the tree p
// was computed against. The second result is false when the addressed node
// was structurally removed and the path no longer means anything.
//
// The affinity argument matters only when p addresses exactly the boundary
// being split: Forward (the default) biases the path to the new later
// sibling, Backward keeps it on the earlier one, and Pinned gives the path
// up rather than pick a side.
func (p Path) Transform(op Operation, affinity ...Affinity) (Path, bool) {
	aff := affinityOrDefault(affinity, Forward)
	out := slices.Clone(p)
	switch op := op.(type) {
	case *InsertNode:
		if op.Path.Equal(p) || op.Path.EndsBefore(p) || op.Path.IsAncestor(p) {
			out[len(op.Path)-1]++
		}
	case *RemoveNode:
		if op.Path.Equal(p) || op.Path.IsAncestor(p) {
			return nil, false
		}
		if op.Path.EndsBefore(p) {
			out[len(op.Path)-1]--
		}
	case *MergeNode:
		if op.Path.Equal(p) || op.Path.EndsBefore(p) {
			out[len(op.Path)-1]--
		} else if op.Path.IsAncestor(p) {
			out[len(op.Path)-1]--
			out[len(op.Path)] += op.Position
		}
	case *SplitNode:
		if op.Path.Equal(p) {
			switch aff {
			case Forward:
				out[len(out)-1]++
			case Backward:
				// stay on the earlier half
			default:
				return nil, false
			}
		} else if op.Path.EndsBefore(p) {
			out[len(op.Path)-1]++
		} else if op.Path.IsAncestor(p) && p[len(op.Path)] >= op.Position {
			out[len(op.Path)-1]++
			out[len(op.Path)] -= op.Position
		}
	case *MoveNode:
		from, to := op.Path, op.NewPath
		if from.Equal(to) {
			break
		}
		if from.IsAncestor(p) || from.Equal(p) {
			// the path rides along with the moved subtree
			moved := slices.Clone(to)
			if from.EndsBefore(to) && len(from) < len(to) {
				moved[len(from)-1]--
			}
			return append(moved, p[len(from):]...), true
		} else if from.IsSibling(to) && (to.IsAncestor(p) || to.Equal(p)) {
			if from.EndsBefore(p) {
				out[len(from)-1]--
			} else {
				out[len(from)-1]++
			}
		} else if to.EndsBefore(p) || to.Equal(p) || to.IsAncestor(p) {
			if from.EndsBefore(p) {
				out[len(from)-1]--
			}
			out[len(to)-1]++
		} else if from.EndsBefore(p) {
			if to.Equal(p) {
				out[len(to)-1]++
			}
			out[len(from)-1]--
		}
	case *InsertText, *RemoveText, *SetNode, *SetSelection:
		// no structural effect on paths
	}
	return out, true
}
