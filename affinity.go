package weft

// Affinity is the directional bias a coordinate uses to pick a side when an
// edit lands exactly on it. The zero value means "use the default for the
// call": Forward for Path and Point transforms, Inward for Range transforms.
type Affinity int

const (
	// DefaultAffinity lets each transform pick its own default.
	DefaultAffinity Affinity = iota

	// Forward sticks a coordinate to the later side of an edit at its
	// position.
	Forward

	// Backward sticks a coordinate to the earlier side.
	Backward

	// Pinned refuses to take a side: an insert exactly at a pinned point
	// leaves the point where it is, and a split exactly at a pinned point
	// loses the point instead of choosing a half.
	Pinned

	// Inward biases both endpoints of a range toward its interior, so an
	// edit at a boundary cannot grow the selection.
	Inward

	// Outward biases both endpoints of a range away from its interior.
	Outward
)

func (a Affinity) String() string {
	switch a {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Pinned:
		return "pinned"
	case Inward:
		return "inward"
	case Outward:
		return "outward"
	}
	return "default"
}

// ResolveAffinity turns a range-level affinity into the pair of point-level
// affinities for the anchor and the focus. The forward flag is the range's
// direction and collapsed reports whether anchor and focus coincide; a
// collapsed range resolves Inward to one shared side so an edit cannot pull
// its endpoints apart. Forward, Backward, and Pinned apply to both endpoints
// unchanged.
func ResolveAffinity(a Affinity, forward, collapsed bool) (anchor, focus Affinity) {
	switch a {
	case Inward, DefaultAffinity:
		if forward {
			if collapsed {
				return Forward, Forward
			}
			return Forward, Backward
		}
		if collapsed {
			return Backward, Backward
		}
		return Backward, Forward
	case Outward:
		if forward {
			return Backward, Forward
		}
		return Forward, Backward
	default:
		return a, a
	}
}

// affinityOrDefault reads an optional affinity argument.
func affinityOrDefault(args []Affinity, def Affinity) Affinity {
	if len(args) > 0 && args[0] != DefaultAffinity {
		return args[0]
	}
	return def
}
