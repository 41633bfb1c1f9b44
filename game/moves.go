package game

// LegalMoveSet maps each legal destination to the directions along which
// pawns will flip. Destinations keep the order in which the scan found them,
// and so do the directions of each destination.
type LegalMoveSet struct {
	order []Position
	dirs  map[Position][]Direction
}

func (s *LegalMoveSet) add(p Position, d Direction) {
	if s.dirs == nil {
		s.dirs = map[Position][]Direction{}
	}
	existing, ok := s.dirs[p]
	if !ok {
		s.order = append(s.order, p)
	}
	for _, x := range existing {
		if x == d {
			return
		}
	}
	s.dirs[p] = append(existing, d)
}

// Len is the number of destinations.
func (s LegalMoveSet) Len() int {
	return len(s.order)
}

// Contains tells if p is a legal destination.
func (s LegalMoveSet) Contains(p Position) bool {
	_, ok := s.dirs[p]
	return ok
}

// Directions gets the flip directions for a destination.
func (s LegalMoveSet) Directions(p Position) ([]Direction, bool) {
	d, ok := s.dirs[p]
	if !ok {
		return nil, false
	}
	out := make([]Direction, len(d))
	copy(out, d)
	return out, true
}

// Positions lists the destinations in scan order.
func (s LegalMoveSet) Positions() []Position {
	out := make([]Position, len(s.order))
	copy(out, s.order)
	return out
}

// At gets the i'th destination in scan order. This is how a move is picked by
// letter in the terminal client.
func (s LegalMoveSet) At(i int) (Position, bool) {
	if i < 0 || i >= len(s.order) {
		return Position{}, false
	}
	return s.order[i], true
}

// Equal is true when both sets have the same destinations and directions, in
// the same order.
func (s LegalMoveSet) Equal(o LegalMoveSet) bool {
	if len(s.order) != len(o.order) {
		return false
	}
	for i, p := range s.order {
		if o.order[i] != p {
			return false
		}
		a, b := s.dirs[p], o.dirs[p]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// sameDirections compares as sets, since a caller may not keep the order.
func sameDirections(a, b []Direction) bool {
	return len(a) == len(b) && containsAll(a, b) && containsAll(b, a)
}

func containsAll(l []Direction, want []Direction) bool {
	for _, x := range want {
		found := false
		for _, y := range l {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
