package grid

import "sort"

// Selection tracks selected rows by their global index into the current
// filtered/sorted sequence, anchored to the last-touched index for range
// extension. Indices are positional, not record identities, so a selection
// is stale once the filtered sequence is recomputed; the session clears it
// at that point.
type Selection struct {
	members map[int]struct{}
	anchor  int
}

// NewSelection returns an empty selection with no anchor.
func NewSelection() *Selection {
	return &Selection{members: make(map[int]struct{}), anchor: -1}
}

// Click applies plain-click semantics at index i: if i is the sole current
// selection the whole selection toggles off, otherwise the selection is
// replaced by {i}.
func (s *Selection) Click(i int) {
	_, has := s.members[i]
	sole := has && len(s.members) == 1
	s.members = make(map[int]struct{})
	if !sole {
		s.members[i] = struct{}{}
	}
	s.anchor = i
}

// RangeClick applies shift-click semantics: the closed interval between the
// anchor and i is added to the existing selection (union, not replace).
// With no prior selection it degrades to a plain single select.
func (s *Selection) RangeClick(i int) {
	if len(s.members) == 0 || s.anchor < 0 {
		s.members = map[int]struct{}{i: {}}
		s.anchor = i
		return
	}
	lo, hi := s.anchor, i
	if lo > hi {
		lo, hi = hi, lo
	}
	for k := lo; k <= hi; k++ {
		s.members[k] = struct{}{}
	}
	s.anchor = i
}

// ToggleClick applies ctrl/meta-click semantics: flip membership of i
// alone, leaving the rest of the selection untouched.
func (s *Selection) ToggleClick(i int) {
	if _, ok := s.members[i]; ok {
		delete(s.members, i)
	} else {
		s.members[i] = struct{}{}
	}
	s.anchor = i
}

// AddRange adds every index in the half-open range [lo, hi), used for
// "select all on current page".
func (s *Selection) AddRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		s.members[i] = struct{}{}
	}
}

// RemoveRange removes exactly the indices in [lo, hi), leaving selections
// outside the range untouched.
func (s *Selection) RemoveRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		delete(s.members, i)
	}
}

// Has reports whether index i is selected.
func (s *Selection) Has(i int) bool {
	_, ok := s.members[i]
	return ok
}

// Len returns the number of selected indices.
func (s *Selection) Len() int { return len(s.members) }

// Indices returns the selected global indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.members))
	for i := range s.members {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clear empties the selection and drops the anchor.
func (s *Selection) Clear() {
	s.members = make(map[int]struct{})
	s.anchor = -1
}
