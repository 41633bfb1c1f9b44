package game

// GameError is an error with a stable code, so that it can be matched after
// crossing a process boundary.
type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrBadSize means a board was asked for with fewer than 4 rows
	ErrBadSize = &GameError{"BADSIZE", "board size must be at least 4"}
	// ErrBadColor is for anything that is neither black nor white
	ErrBadColor = &GameError{"BADCOLOR", "no such color"}

	// ErrInvalidMove means the destination is not in the legal move set
	ErrInvalidMove = &GameError{"INVALIDMOVE", "not a legal move"}
	// ErrBoardCorrupt means a flip line ran off the board or into an empty
	// cell before reaching an anchor
	ErrBoardCorrupt = &GameError{"BOARDCORRUPT", "flip line has no anchor"}

	// ErrGameOver is for any play after two passes in a row
	ErrGameOver = &GameError{"GAMEOVER", "game is over"}
	// ErrMustPass means the mover has no legal move
	ErrMustPass = &GameError{"MUSTPASS", "no legal move, must pass"}
	// ErrCannotPass means the mover has a legal move and may not pass
	ErrCannotPass = &GameError{"CANNOTPASS", "a legal move exists, cannot pass"}
)

var allErrors = []*GameError{
	ErrBadSize,
	ErrBadColor,
	ErrInvalidMove,
	ErrBoardCorrupt,
	ErrGameOver,
	ErrMustPass,
	ErrCannotPass,
}

// ReError matches an error code back to the error object, for codes that came
// over the wire or out of JSON.
func ReError(code, msg string) error {
	for _, e := range allErrors {
		if e.Code == code {
			return e
		}
	}
	return &GameError{code, msg}
}
