package game

// Snapshot is everything about a game at one moment, for showing to someone.
type Snapshot struct {
	Size     int        `json:"size"`
	Rows     []string   `json:"rows"`
	Mover    Color      `json:"mover"`
	Passes   int        `json:"passes"`
	Plies    int        `json:"plies"`
	Black    int        `json:"black"`
	White    int        `json:"white"`
	Terminal bool       `json:"terminal"`
	Outcome  Outcome    `json:"outcome,omitempty"`
	Moves    []Position `json:"moves"`
}

// Snapshot copies out the state. Rows use 'B' and 'W' for pawns and '.' for
// empty cells.
func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Size:     g.board.size,
		Mover:    g.mover,
		Passes:   g.passes,
		Plies:    g.plies,
		Terminal: g.IsTerminal(),
		Moves:    []Position{},
	}

	for _, row := range g.board.cells {
		line := make([]byte, len(row))
		for i, c := range row {
			switch c {
			case blackPawn:
				line[i] = 'B'
			case whitePawn:
				line[i] = 'W'
			default:
				line[i] = '.'
			}
		}
		s.Rows = append(s.Rows, string(line))
	}

	s.Black, s.White = g.board.Tally()

	if s.Terminal {
		s.Outcome = g.Result().Outcome
	}
	s.Moves = append(s.Moves, g.LegalMoves().Positions()...)

	return s
}
