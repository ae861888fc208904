package weft

// A Range is a selection span between two points. Anchor is where the
// selection started and Focus where it currently ends; nothing orders them,
// so a range may run backward. Props carries caller-attached data that every
// operation here preserves untouched.
type Range struct {
	Anchor Point
	Focus  Point
	Props  Props
}

///
/// predicates
///

// IsCollapsed reports whether anchor and focus coincide.
func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

func (r Range) IsExpanded() bool {
	return !r.IsCollapsed()
}

// IsBackward reports whether the anchor sits after the focus in document
// order.
func (r Range) IsBackward() bool {
	return r.Anchor.IsAfter(r.Focus)
}

func (r Range) IsForward() bool {
	return !r.IsBackward()
}

///
/// geometry
///

// Edges returns the range's endpoints in document order, or swapped when
// reverse is requested.
func (r Range) Edges(reverse ...bool) (Point, Point) {
	rev := len(reverse) > 0 && reverse[0]
	if r.IsBackward() != rev {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

// Intersection returns the span shared by r and other, keeping r's Props.
// The second result is false when the spans are disjoint.
func (r Range) Intersection(other Range) (Range, bool) {
	s1, e1 := r.Edges()
	s2, e2 := other.Edges()
	start := s1
	if start.IsBefore(s2) {
		start = s2
	}
	end := e1
	if e2.IsBefore(end) {
		end = e2
	}
	if end.IsBefore(start) {
		return Range{}, false
	}
	return Range{Anchor: start, Focus: end, Props: r.Props}, true
}

// IncludesPoint reports whether pt falls within r's span, endpoints
// included.
func (r Range) IncludesPoint(pt Point) bool {
	start, end := r.Edges()
	return pt.Compare(start) >= 0 && pt.Compare(end) <= 0
}

// IncludesPath reports whether the node at p falls within r's span.
func (r Range) IncludesPath(p Path) bool {
	start, end := r.Edges()
	return p.Compare(start.Path) >= 0 && p.Compare(end.Path) <= 0
}

// IncludesRange reports whether other overlaps r: either of other's
// endpoints lies inside r, or other strictly brackets r on both sides.
// Endpoints count as inside, so ranges that merely touch still overlap.
func (r Range) IncludesRange(other Range) bool {
	if r.IncludesPoint(other.Anchor) || r.IncludesPoint(other.Focus) {
		return true
	}
	rs, re := r.Edges()
	os, oe := other.Edges()
	return os.IsBefore(rs) && oe.IsAfter(re)
}

///
/// transform
///

// Transform rebases both endpoints of r across op. With no affinity the
// range protects itself Inward; a single Inward/Outward/Forward/Backward
// value is resolved through ResolveAffinity, and two values pin the anchor
// and focus affinities explicitly, in that order. The second result is false
// when either endpoint no longer exists, and the caller must fall back to a
// known-good selection.
func (r Range) Transform(op Operation, affinity ...Affinity) (Range, bool) {
	var anchorAff, focusAff Affinity
	if len(affinity) >= 2 {
		anchorAff, focusAff = affinity[0], affinity[1]
	} else {
		anchorAff, focusAff = ResolveAffinity(affinityOrDefault(affinity, Inward), r.IsForward(), r.IsCollapsed())
	}
	anchor, ok := r.Anchor.Transform(op, anchorAff)
	if !ok {
		return Range{}, false
	}
	focus, ok := r.Focus.Transform(op, focusAff)
	if !ok {
		return Range{}, false
	}
	return Range{Anchor: anchor, Focus: focus, Props: r.Props}, true
}
