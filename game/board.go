package game

import "fmt"

// DefaultSize is the usual 8x8 board.
const DefaultSize = 8

// cell is what is on one square of the board.
type cell int8

const (
	empty cell = iota
	blackPawn
	whitePawn
)

func pawn(c Color) cell {
	if c == Black {
		return blackPawn
	}
	return whitePawn
}

func (c cell) color() Color {
	if c == blackPawn {
		return Black
	}
	return White
}

// Board is a square grid of cells. Pawns are placed and flipped, but never
// taken off.
type Board struct {
	size  int
	cells [][]cell
}

// NewBoard makes a board with the four starting pawns in the middle.
func NewBoard(size int) (*Board, error) {
	if size < 4 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	b := &Board{size: size}
	b.reset()
	return b, nil
}

func (b *Board) reset() {
	b.cells = make([][]cell, b.size)
	for r := range b.cells {
		b.cells[r] = make([]cell, b.size)
	}

	c := b.size / 2
	b.cells[c-1][c-1] = whitePawn
	b.cells[c][c] = whitePawn
	b.cells[c-1][c] = blackPawn
	b.cells[c][c-1] = blackPawn
}

// Size is the number of rows, and columns.
func (b *Board) Size() int {
	return b.size
}

// InBounds tells if p is on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At gets the color of the pawn at p, if there is one.
func (b *Board) At(p Position) (Color, bool) {
	if !b.InBounds(p) {
		return Black, false
	}
	c := b.cells[p.Row][p.Col]
	if c == empty {
		return Black, false
	}
	return c.color(), true
}

func (b *Board) isEmpty(p Position) bool {
	return b.InBounds(p) && b.cells[p.Row][p.Col] == empty
}

// Tally counts the pawns of each color.
func (b *Board) Tally() (black, white int) {
	for _, row := range b.cells {
		for _, c := range row {
			switch c {
			case blackPawn:
				black++
			case whitePawn:
				white++
			}
		}
	}
	return black, white
}

// Occupied is the number of pawns on the board.
func (b *Board) Occupied() int {
	black, white := b.Tally()
	return black + white
}

// Clone makes an independent copy.
func (b *Board) Clone() *Board {
	out := &Board{size: b.size, cells: make([][]cell, b.size)}
	for r, row := range b.cells {
		out.cells[r] = append([]cell(nil), row...)
	}
	return out
}

// LegalMoves finds every destination where color could play. It works from
// the opponent's pawns: each empty neighbour of an opponent pawn is a
// candidate, and it is legal if walking the other way through the opponent's
// line ends at one of color's own pawns.
func (b *Board) LegalMoves(color Color) LegalMoveSet {
	var set LegalMoveSet
	if !color.Valid() {
		return set
	}

	opponent := pawn(color.Opponent())

	for r, row := range b.cells {
		for c, here := range row {
			if here != opponent {
				continue
			}
			p := Position{r, c}
			for _, v := range directions {
				dest := p.Step(v)
				if !b.isEmpty(dest) {
					continue
				}
				back := v.Reverse()
				if b.closesLine(color, p, back) {
					set.add(dest, back)
				}
			}
		}
	}

	return set
}

// closesLine walks from an opponent pawn at p in direction d, over any more
// opponent pawns, and is true if it lands on a pawn of color.
func (b *Board) closesLine(color Color, p Position, d Direction) bool {
	for {
		p = p.Step(d)
		if !b.InBounds(p) {
			return false
		}
		switch c := b.cells[p.Row][p.Col]; {
		case c == empty:
			return false
		case c.color() == color:
			return true
		}
	}
}

// Play puts a pawn of color at dest, if that is a legal move right now, and
// returns how many pawns were flipped.
func (b *Board) Play(color Color, dest Position) (int, error) {
	if !color.Valid() {
		return 0, ErrBadColor
	}
	dirs, ok := b.LegalMoves(color).Directions(dest)
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", ErrInvalidMove, color, dest)
	}
	return b.apply(color, dest, dirs)
}

// ApplyMove puts a pawn of color at dest and flips along dirs. dest and dirs
// must be an entry of the legal move set for color, else nothing changes and
// ErrInvalidMove is returned.
func (b *Board) ApplyMove(color Color, dest Position, dirs []Direction) (int, error) {
	if !color.Valid() {
		return 0, ErrBadColor
	}
	want, ok := b.LegalMoves(color).Directions(dest)
	if !ok || !sameDirections(want, dirs) {
		return 0, fmt.Errorf("%w: %s to %s along %v", ErrInvalidMove, color, dest, dirs)
	}
	return b.apply(color, dest, dirs)
}

// apply does the placing and flipping. All lines are checked before anything
// is written, so a failure leaves the board as it was.
func (b *Board) apply(color Color, dest Position, dirs []Direction) (int, error) {
	if !b.isEmpty(dest) {
		return 0, fmt.Errorf("%w: %s is not empty", ErrInvalidMove, dest)
	}

	runs := make([]int, len(dirs))
	for i, d := range dirs {
		n, err := b.lineLength(color, dest, d)
		if err != nil {
			return 0, err
		}
		runs[i] = n
	}

	b.cells[dest.Row][dest.Col] = pawn(color)

	flipped := 0
	for i, d := range dirs {
		p := dest
		for j := 0; j < runs[i]; j++ {
			p = p.Step(d)
			b.cells[p.Row][p.Col] = pawn(color)
			flipped++
		}
	}

	return flipped, nil
}

// lineLength counts the pawns to flip from dest in direction d, stopping at
// the anchor.
func (b *Board) lineLength(color Color, dest Position, d Direction) (int, error) {
	if !d.isUnit() {
		return 0, fmt.Errorf("%w: %s is not a direction", ErrBoardCorrupt, d)
	}
	n := 0
	p := dest
	for {
		p = p.Step(d)
		if !b.InBounds(p) || b.cells[p.Row][p.Col] == empty {
			return 0, fmt.Errorf("%w: from %s along %s", ErrBoardCorrupt, dest, d)
		}
		if b.cells[p.Row][p.Col].color() == color {
			return n, nil
		}
		n++
	}
}
