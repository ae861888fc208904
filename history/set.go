package history

// Set is a small value-semantics string-ish set used for checkpoint names.
type Set[T comparable] map[T]bool

func NewSet[T comparable](elements ...T) Set[T] {
	result := Set[T]{}
	for _, item := range elements {
		result[item] = true
	}
	return result
}

func (s Set[T]) ToSlice() []T {
	items := make([]T, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	return items
}

func (s Set[T]) Copy() Set[T] {
	result := Set[T]{}
	for k, v := range s {
		result[k] = v
	}
	return result
}

// Union returns a set with the members of both, reusing one side when the
// other is empty.
func (s Set[T]) Union(s2 Set[T]) Set[T] {
	if len(s) == 0 {
		return s2
	} else if len(s2) == 0 {
		return s
	}
	result := s.Copy()
	for k, v := range s2 {
		result[k] = v
	}
	return result
}

func (s Set[T]) Add(item T) Set[T] {
	s[item] = true
	return s
}

func (s Set[T]) Remove(item T) Set[T] {
	delete(s, item)
	return s
}

func (s Set[T]) Has(item T) bool {
	return s[item]
}

func (s Set[T]) IsEmpty() bool {
	return len(s) == 0
}
