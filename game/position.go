package game

import "fmt"

// Position is a cell on the board, counted from the top left.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pos is shorthand for making a Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Step moves one cell in a direction.
func (p Position) Step(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

// String is the coordinate pair form, e.g. "(2, 3)". This is also what goes
// over the wire.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Direction is one of the 8 unit vectors around a cell.
type Direction struct {
	DRow int `json:"drow"`
	DCol int `json:"dcol"`
}

// Reverse points the other way.
func (d Direction) Reverse() Direction {
	return Direction{DRow: -d.DRow, DCol: -d.DCol}
}

func (d Direction) String() string {
	return fmt.Sprintf("(%d, %d)", d.DRow, d.DCol)
}

// isUnit is true for the 8 neighbour vectors and nothing else.
func (d Direction) isUnit() bool {
	if d.DRow < -1 || d.DRow > 1 || d.DCol < -1 || d.DCol > 1 {
		return false
	}
	return d.DRow != 0 || d.DCol != 0
}

// directions is the scan order for neighbours. Both peers must use the same
// order, because the legal move set is ordered by it.
var directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
