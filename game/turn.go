package game

import "fmt"

// Ply is one player's turn, either a move or a pass.
type Ply struct {
	Number   int      `json:"number"`
	Color    Color    `json:"color"`
	Pass     bool     `json:"pass"`
	Position Position `json:"position"`
	Flipped  int      `json:"flipped"`
}

func (p Ply) String() string {
	if p.Pass {
		return fmt.Sprintf("%d: %s passes", p.Number, p.Color)
	}
	return fmt.Sprintf("%d: %s plays %s, flips %d", p.Number, p.Color, p.Position, p.Flipped)
}

// GameState runs one game: whose turn it is, and how many passes have
// happened in a row. Two passes in a row end the game.
type GameState struct {
	board  *Board
	mover  Color
	passes int
	plies  int
}

// NewGameState starts a game on a fresh board, with black to move.
func NewGameState(size int) (*GameState, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &GameState{board: b, mover: Black}, nil
}

// Reset starts again on a fresh board of the same size.
func (g *GameState) Reset() {
	g.board.reset()
	g.mover = Black
	g.passes = 0
	g.plies = 0
}

// Mover is the color whose turn it is.
func (g *GameState) Mover() Color {
	return g.mover
}

// Passes is the number of passes in a row so far.
func (g *GameState) Passes() int {
	return g.passes
}

// Plies is the number of plies played, passes included.
func (g *GameState) Plies() int {
	return g.plies
}

// IsTerminal is true once two passes have happened in a row.
func (g *GameState) IsTerminal() bool {
	return g.passes >= 2
}

// Size is the board size.
func (g *GameState) Size() int {
	return g.board.Size()
}

// At gets the pawn at p.
func (g *GameState) At(p Position) (Color, bool) {
	return g.board.At(p)
}

// Tally counts pawns of each color.
func (g *GameState) Tally() (black, white int) {
	return g.board.Tally()
}

// LegalMoves is worked out fresh for the mover every time.
func (g *GameState) LegalMoves() LegalMoveSet {
	if g.IsTerminal() {
		return LegalMoveSet{}
	}
	return g.board.LegalMoves(g.mover)
}

// MustPass is true when the game is still going but the mover has nowhere
// to play.
func (g *GameState) MustPass() bool {
	return !g.IsTerminal() && g.LegalMoves().Len() == 0
}

// Play makes the mover's move at dest, then hands the turn over.
func (g *GameState) Play(dest Position) (Ply, error) {
	if g.IsTerminal() {
		return Ply{}, ErrGameOver
	}

	moves := g.LegalMoves()
	if moves.Len() == 0 {
		return Ply{}, ErrMustPass
	}
	dirs, ok := moves.Directions(dest)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %s to %s", ErrInvalidMove, g.mover, dest)
	}

	flipped, err := g.board.ApplyMove(g.mover, dest, dirs)
	if err != nil {
		return Ply{}, err
	}

	g.plies++
	ply := Ply{
		Number:   g.plies,
		Color:    g.mover,
		Position: dest,
		Flipped:  flipped,
	}

	g.passes = 0
	g.mover = g.mover.Opponent()

	return ply, nil
}

// Pass records that the mover could not play. The turn still changes hands.
func (g *GameState) Pass() (Ply, error) {
	if g.IsTerminal() {
		return Ply{}, ErrGameOver
	}
	if g.LegalMoves().Len() > 0 {
		return Ply{}, ErrCannotPass
	}

	g.plies++
	ply := Ply{
		Number: g.plies,
		Color:  g.mover,
		Pass:   true,
	}

	g.passes++
	if !g.IsTerminal() {
		g.mover = g.mover.Opponent()
	}

	return ply, nil
}

// Outcome is how a game ended.
type Outcome string

const (
	BlackWins Outcome = "black"
	WhiteWins Outcome = "white"
	Draw      Outcome = "draw"
)

// Result is the count at the end of a game.
type Result struct {
	Black   int     `json:"black"`
	White   int     `json:"white"`
	Outcome Outcome `json:"outcome"`
}

// Result counts the board. The color with strictly more pawns wins; equal
// counts are a draw.
func (g *GameState) Result() Result {
	black, white := g.board.Tally()
	r := Result{Black: black, White: white, Outcome: Draw}
	switch {
	case black > white:
		r.Outcome = BlackWins
	case white > black:
		r.Outcome = WhiteWins
	}
	return r
}
