package weft

import (
	"fmt"
	"maps"
	"slices"
)

// Apply runs op against root and returns the resulting tree. It never
// mutates its input: the ancestor chain down to the edited node is copied
// and every untouched subtree is shared between the old and new roots, so
// prior snapshots stay valid for inspection.
//
// Validity is the caller's burden. An operation whose preconditions do not
// hold against root fails with ErrInvalidOperation instead of corrupting the
// tree; nothing is retried or repaired here.
func Apply(root *Element, op Operation) (*Element, error) {
	switch op := op.(type) {
	case *InsertNode:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			if index > len(kids) {
				return nil, invalidOp("insert at %v past %d children", op.Path, len(kids))
			}
			return slices.Insert(kids, index, op.Node), nil
		})

	case *RemoveNode:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			if index >= len(kids) {
				return nil, invalidOp("remove at %v past %d children", op.Path, len(kids))
			}
			return slices.Delete(kids, index, index+1), nil
		})

	case *SetNode:
		if len(op.Path) == 0 {
			return &Element{Children: root.Children, Props: mergeProps(root.Props, op.NewProps)}, nil
		}
		parent, index, _ := splitTarget(op.Path)
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			if index >= len(kids) {
				return nil, invalidOp("set at %v past %d children", op.Path, len(kids))
			}
			switch n := kids[index].(type) {
			case *Element:
				kids[index] = &Element{Children: n.Children, Props: mergeProps(n.Props, op.NewProps)}
			case *Text:
				kids[index] = &Text{Text: n.Text, Props: mergeProps(n.Props, op.NewProps)}
			}
			return kids, nil
		})

	case *MergeNode:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			if index == 0 || index >= len(kids) {
				return nil, invalidOp("merge at %v has no previous sibling", op.Path)
			}
			merged, err := mergeNodes(kids[index-1], kids[index], op.Path)
			if err != nil {
				return nil, err
			}
			kids[index-1] = merged
			return slices.Delete(kids, index, index+1), nil
		})

	case *SplitNode:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			if index >= len(kids) {
				return nil, invalidOp("split at %v past %d children", op.Path, len(kids))
			}
			before, after, err := splitNode(kids[index], op.Position, op.Props, op.Path)
			if err != nil {
				return nil, err
			}
			kids[index] = before
			return slices.Insert(kids, index+1, after), nil
		})

	case *MoveNode:
		if op.Path.IsAncestor(op.NewPath) {
			return nil, invalidOp("cannot move %v inside itself at %v", op.Path, op.NewPath)
		}
		node, err := Get(root, op.Path)
		if err != nil {
			return nil, invalidOp("move source: %v", err)
		}
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		lifted, err := splice(root, parent, func(kids []Node) ([]Node, error) {
			return slices.Delete(kids, index, index+1), nil
		})
		if err != nil {
			return nil, err
		}
		// the removal may have shifted the destination; running the source
		// path through the move itself yields the node's final address
		landing, _ := op.Path.Transform(op)
		newParent, newIndex, err := splitTarget(landing)
		if err != nil {
			return nil, err
		}
		return splice(lifted, newParent, func(kids []Node) ([]Node, error) {
			if newIndex > len(kids) {
				return nil, invalidOp("move to %v past %d children", op.NewPath, len(kids))
			}
			return slices.Insert(kids, newIndex, node), nil
		})

	case *InsertText:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			leaf, err := leafAt(kids, index, op.Path)
			if err != nil {
				return nil, err
			}
			if op.Offset < 0 || op.Offset > len(leaf.Text) {
				return nil, invalidOp("insert text at %v offset %d of %d", op.Path, op.Offset, len(leaf.Text))
			}
			kids[index] = &Text{
				Text:  leaf.Text[:op.Offset] + op.Text + leaf.Text[op.Offset:],
				Props: leaf.Props,
			}
			return kids, nil
		})

	case *RemoveText:
		parent, index, err := splitTarget(op.Path)
		if err != nil {
			return nil, err
		}
		return splice(root, parent, func(kids []Node) ([]Node, error) {
			leaf, err := leafAt(kids, index, op.Path)
			if err != nil {
				return nil, err
			}
			if op.Offset < 0 || op.Offset+len(op.Text) > len(leaf.Text) {
				return nil, invalidOp("remove text at %v offset %d+%d of %d", op.Path, op.Offset, len(op.Text), len(leaf.Text))
			}
			kids[index] = &Text{
				Text:  leaf.Text[:op.Offset] + leaf.Text[op.Offset+len(op.Text):],
				Props: leaf.Props,
			}
			return kids, nil
		})

	case *SetSelection:
		// selection changes never touch the tree
		return root, nil
	}
	return nil, invalidOp("unknown operation %T", op)
}

///
/// splicing
///

// splice returns a new root in which the child list of the element at parent
// has been rewritten by edit. Only the chain from the root down to that
// element is copied; edit receives a private copy of the child slice and may
// return it modified.
func splice(root *Element, parent Path, edit func([]Node) ([]Node, error)) (*Element, error) {
	if len(parent) == 0 {
		kids, err := edit(slices.Clone(root.Children))
		if err != nil {
			return nil, err
		}
		return &Element{Children: kids, Props: root.Props}, nil
	}
	index := parent[0]
	if index < 0 || index >= len(root.Children) {
		return nil, invalidOp("no node at index %d", index)
	}
	child, ok := root.Children[index].(*Element)
	if !ok {
		return nil, invalidOp("node at index %d is a leaf, not an element", index)
	}
	rewritten, err := splice(child, parent[1:], edit)
	if err != nil {
		return nil, err
	}
	kids := slices.Clone(root.Children)
	kids[index] = rewritten
	return &Element{Children: kids, Props: root.Props}, nil
}

// splitTarget separates a target path into its parent path and final index.
func splitTarget(p Path) (Path, int, error) {
	if len(p) == 0 {
		return nil, 0, invalidOp("the root cannot be the target of a structural edit")
	}
	return p[:len(p)-1], p[len(p)-1], nil
}

func leafAt(kids []Node, index int, p Path) (*Text, error) {
	if index >= len(kids) {
		return nil, invalidOp("no node at %v", p)
	}
	leaf, ok := kids[index].(*Text)
	if !ok {
		return nil, invalidOp("%v is not a text leaf", p)
	}
	return leaf, nil
}

func mergeNodes(prev, node Node, at Path) (Node, error) {
	switch prev := prev.(type) {
	case *Text:
		node, ok := node.(*Text)
		if !ok {
			return nil, invalidOp("merge at %v mixes a leaf into an element", at)
		}
		return &Text{Text: prev.Text + node.Text, Props: prev.Props}, nil
	case *Element:
		node, ok := node.(*Element)
		if !ok {
			return nil, invalidOp("merge at %v mixes an element into a leaf", at)
		}
		kids := slices.Clone(prev.Children)
		return &Element{Children: append(kids, node.Children...), Props: prev.Props}, nil
	}
	return nil, invalidOp("merge at %v on unknown node", at)
}

func splitNode(n Node, position int, props Props, at Path) (Node, Node, error) {
	switch n := n.(type) {
	case *Text:
		if position < 0 || position > len(n.Text) {
			return nil, nil, invalidOp("split at %v position %d of %d", at, position, len(n.Text))
		}
		before := &Text{Text: n.Text[:position], Props: n.Props}
		after := &Text{Text: n.Text[position:], Props: overlayProps(n.Props, props)}
		return before, after, nil
	case *Element:
		if position < 0 || position > len(n.Children) {
			return nil, nil, invalidOp("split at %v position %d of %d", at, position, len(n.Children))
		}
		before := &Element{Children: slices.Clone(n.Children[:position]), Props: n.Props}
		after := &Element{Children: slices.Clone(n.Children[position:]), Props: overlayProps(n.Props, props)}
		return before, after, nil
	}
	return nil, nil, invalidOp("split at %v on unknown node", at)
}

///
/// properties
///

// mergeProps lays patch over base, deleting keys whose patched value is nil.
func mergeProps(base, patch Props) Props {
	out := Props{}
	maps.Copy(out, base)
	for key, value := range patch {
		if value == nil {
			delete(out, key)
		} else {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// overlayProps lays patch over base without the nil-deletes; used for the
// freshly created half of a split.
func overlayProps(base, patch Props) Props {
	if len(patch) == 0 {
		return base
	}
	out := Props{}
	maps.Copy(out, base)
	maps.Copy(out, patch)
	return out
}

func invalidOp(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}
