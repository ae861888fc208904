package weft

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

///
/// types
///

// Props is the open-ended property bag attached to nodes and ranges. The
// core never interprets its contents; it only copies, merges, and compares
// them on behalf of the layers above.
type Props map[string]any

// A Node is one vertex of the document tree. The set of implementations is
// closed: *Element for internal nodes and *Text for leaves. String returns
// the node's plain-text projection.
type Node interface {
	fmt.Stringer
	node()
}

// An Element is an internal node with an ordered child list.
type Element struct {
	Children []Node
	Props    Props
}

// A Text is a leaf node holding a run of characters. Offsets into it are
// byte offsets.
type Text struct {
	Text  string
	Props Props
}

func (e *Element) node() {}
func (t *Text) node()    {}

// String concatenates the text of every leaf under e in document order, with
// no separators.
func (e *Element) String() string {
	sb := &strings.Builder{}
	for _, child := range e.Children {
		fmt.Fprint(sb, child)
	}
	return sb.String()
}

func (t *Text) String() string {
	return t.Text
}

func (e *Element) props() Props { return e.Props }
func (t *Text) props() Props    { return t.Props }

// Matches reports whether every requested property is present on n with a
// shallow-equal value. An empty request matches any node.
func Matches(n Node, props Props) bool {
	bag := n.(interface{ props() Props }).props()
	for key, want := range props {
		got, ok := bag[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

///
/// resolution
///

// Get walks root by sibling index at each component of p and returns the
// node it lands on. It fails with ErrPathOutOfRange when a component indexes
// past a child list or tries to descend into a text leaf.
func Get(root Node, p Path) (Node, error) {
	n := root
	for i, index := range p {
		e, ok := n.(*Element)
		if !ok || index < 0 || index >= len(e.Children) {
			return nil, fmt.Errorf("%w: %v stops at depth %d", ErrPathOutOfRange, p, i)
		}
		n = e.Children[index]
	}
	return n, nil
}

// Has reports whether p resolves to a node under root.
func Has(root Node, p Path) bool {
	_, err := Get(root, p)
	return err == nil
}

// Leaf returns the text leaf at p.
func Leaf(root Node, p Path) (*Text, error) {
	n, err := Get(root, p)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a text leaf", ErrInvalidPath, p)
	}
	return t, nil
}

// Parent returns the element owning the node at p.
func Parent(root Node, p Path) (*Element, error) {
	parent, err := p.Parent()
	if err != nil {
		return nil, err
	}
	n, err := Get(root, parent)
	if err != nil {
		return nil, err
	}
	e, ok := n.(*Element)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not an element", ErrInvalidPath, parent)
	}
	return e, nil
}

///
/// traversal
///

// WalkOptions bound and direct a Nodes traversal. From and To clip the
// sequence to paths inside [From, To] in document order; ancestors needed to
// reach From are still visited. Reverse walks the pre-order backwards.
type WalkOptions struct {
	From    Path
	To      Path
	Reverse bool
}

// Nodes returns a lazy depth-first pre-order sequence of (path, node) pairs
// under root, starting with root itself at the empty path. The sequence is
// finite and can be re-ranged from scratch. Yielded paths are fresh copies.
func Nodes(root Node, opts ...WalkOptions) iter.Seq2[Path, Node] {
	var o WalkOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return func(yield func(Path, Node) bool) {
		expanded := map[Node]bool{}
		p := Path{}
		n := root
		for {
			if o.To != nil {
				past := p.IsAfter(o.To)
				if o.Reverse {
					past = p.IsBefore(o.To)
				}
				if past {
					return
				}
			}
			if !expanded[n] {
				if !yield(slices.Clone(p), n) {
					return
				}
			}
			// descend, steering by From while still above it
			if e, ok := n.(*Element); ok && !expanded[n] && len(e.Children) > 0 {
				expanded[n] = true
				index := 0
				if o.Reverse {
					index = len(e.Children) - 1
				}
				if len(o.From) > 0 && p.IsAncestor(o.From) {
					index = o.From[len(p)]
				}
				if index < 0 || index >= len(e.Children) {
					return
				}
				p = append(p, index)
				n = e.Children[index]
				continue
			}
			if len(p) == 0 {
				return
			}
			if !o.Reverse {
				next, _ := p.Next()
				if Has(root, next) {
					p = next
					n, _ = Get(root, p)
					continue
				}
			} else if p[len(p)-1] > 0 {
				prev, _ := p.Previous()
				p = prev
				n, _ = Get(root, p)
				continue
			}
			p, _ = p.Parent()
			n, _ = Get(root, p)
			expanded[n] = true
		}
	}
}

// Ancestors yields the elements above the node at p, from the root downward,
// or leaf-upward when reverse is set. The node at p itself is not included.
func Ancestors(root Node, p Path, reverse ...bool) iter.Seq2[Path, *Element] {
	rev := len(reverse) > 0 && reverse[0]
	return func(yield func(Path, *Element) bool) {
		for i := range len(p) {
			depth := i
			if rev {
				depth = len(p) - 1 - i
			}
			prefix := slices.Clone(p[:depth])
			n, err := Get(root, prefix)
			if err != nil {
				return
			}
			e, ok := n.(*Element)
			if !ok || !yield(prefix, e) {
				return
			}
		}
	}
}

// Descendants yields every node strictly below the node at p, with absolute
// paths.
func Descendants(root Node, p Path) iter.Seq2[Path, Node] {
	return func(yield func(Path, Node) bool) {
		top, err := Get(root, p)
		if err != nil {
			return
		}
		for rel, n := range Nodes(top) {
			if len(rel) == 0 {
				continue
			}
			if !yield(append(slices.Clone(p), rel...), n) {
				return
			}
		}
	}
}
