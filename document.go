package weft

import (
	"github.com/rivo/uniseg"
)

// A Document pairs a tree snapshot with the selection pending against it.
// The command layer owns one of these and replaces it wholesale on every
// edit; history and rendering keep reading the snapshots they already hold.
type Document struct {
	Root      *Element
	Selection *Range
}

// NewDocument builds a document whose root owns the given children.
func NewDocument(children ...Node) *Document {
	return &Document{Root: &Element{Children: children}}
}

// Apply runs op against the document, returning the next snapshot. The
// selection rides through the operation's transform; if the edit removed the
// text under it, the new document carries no selection and the caller picks
// a fallback. A SetSelection replaces the selection outright.
func (d *Document) Apply(op Operation) (*Document, error) {
	root, err := Apply(d.Root, op)
	if err != nil {
		return nil, err
	}
	next := &Document{Root: root}
	if ss, ok := op.(*SetSelection); ok {
		next.Selection = ss.New
	} else if d.Selection != nil {
		if sel, ok := d.Selection.Transform(op); ok {
			next.Selection = &sel
		}
	}
	return next, nil
}

// ApplyAll applies a batch in order. A batch is all-or-nothing: the first
// invalid operation aborts it and the original document stands.
func (d *Document) ApplyAll(ops ...Operation) (*Document, error) {
	next := d
	for _, op := range ops {
		var err error
		if next, err = next.Apply(op); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// String returns the document's plain-text projection.
func (d *Document) String() string {
	return d.Root.String()
}

///
/// caret motion
///

// NextPoint moves pt forward by one user-perceived character (one grapheme
// cluster), stepping into the following text leaf when pt sits at the end of
// its own. The second result is false at the end of the document or when pt
// does not resolve.
func (d *Document) NextPoint(pt Point) (Point, bool) {
	leaf, err := Leaf(d.Root, pt.Path)
	if err != nil {
		return Point{}, false
	}
	if pt.Offset < len(leaf.Text) {
		return Point{Path: pt.Path, Offset: pt.Offset + clusterAfter(leaf.Text, pt.Offset)}, true
	}
	for p, n := range Nodes(d.Root, WalkOptions{From: pt.Path}) {
		t, ok := n.(*Text)
		if !ok || !p.IsAfter(pt.Path) || len(t.Text) == 0 {
			continue
		}
		return Point{Path: p, Offset: clusterAfter(t.Text, 0)}, true
	}
	return Point{}, false
}

// PrevPoint moves pt backward by one grapheme cluster, stepping into the
// preceding text leaf when pt sits at offset zero.
func (d *Document) PrevPoint(pt Point) (Point, bool) {
	leaf, err := Leaf(d.Root, pt.Path)
	if err != nil {
		return Point{}, false
	}
	if pt.Offset > 0 {
		return Point{Path: pt.Path, Offset: clusterBefore(leaf.Text, pt.Offset)}, true
	}
	for p, n := range Nodes(d.Root, WalkOptions{From: pt.Path, Reverse: true}) {
		t, ok := n.(*Text)
		if !ok || !p.IsBefore(pt.Path) || len(t.Text) == 0 {
			continue
		}
		return Point{Path: p, Offset: clusterBefore(t.Text, len(t.Text))}, true
	}
	return Point{}, false
}

// clusterAfter returns the byte length of the grapheme cluster starting at
// offset.
func clusterAfter(text string, offset int) int {
	g := uniseg.NewGraphemes(text[offset:])
	if !g.Next() {
		return 0
	}
	_, end := g.Positions()
	return end
}

// clusterBefore returns the byte offset of the start of the grapheme cluster
// ending at offset.
func clusterBefore(text string, offset int) int {
	start := 0
	g := uniseg.NewGraphemes(text[:offset])
	for g.Next() {
		start, _ = g.Positions()
	}
	return start
}
