package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestNewBoard_diamond(t *testing.T) {
	for size := 4; size <= 12; size++ {
		b, err := NewBoard(size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if n := b.Occupied(); n != 4 {
			t.Errorf("size %d: %d occupied", size, n)
		}
		black, white := b.Tally()
		if black != 2 || white != 2 {
			t.Errorf("size %d: tally %d %d", size, black, white)
		}

		c := size / 2
		want := map[Position]Color{
			Pos(c-1, c-1): White,
			Pos(c, c):     White,
			Pos(c-1, c):   Black,
			Pos(c, c-1):   Black,
		}
		for p, wc := range want {
			got, ok := b.At(p)
			if !ok || got != wc {
				t.Errorf("size %d: at %s got %v %v", size, p, got, ok)
			}
		}
	}
}

func TestNewBoard_tooSmall(t *testing.T) {
	for _, size := range []int{-1, 0, 3} {
		b, err := NewBoard(size)
		if !errors.Is(err, ErrBadSize) {
			t.Errorf("size %d: wrong error %v", size, err)
		}
		if b != nil {
			t.Errorf("size %d: got a board", size)
		}
	}
}

func TestLegalMoves_initial(t *testing.T) {
	b, _ := NewBoard(8)
	moves := b.LegalMoves(Black)

	want := []Position{Pos(2, 3), Pos(3, 2), Pos(4, 5), Pos(5, 4)}
	if got := moves.Positions(); !reflect.DeepEqual(got, want) {
		t.Fatalf("wrong moves: %v", got)
	}
	for _, p := range want {
		dirs, _ := moves.Directions(p)
		if len(dirs) != 1 {
			t.Errorf("%s: directions %v", p, dirs)
		}
	}

	dirs, _ := moves.Directions(Pos(2, 3))
	if dirs[0] != (Direction{1, 0}) {
		t.Errorf("(2, 3) flips along %v", dirs[0])
	}
}

func TestLegalMoves_idempotent(t *testing.T) {
	g, _ := NewGameState(8)
	rng := rand.New(rand.NewSource(7))

	for !g.IsTerminal() {
		for _, c := range []Color{Black, White} {
			m1 := g.board.LegalMoves(c)
			m2 := g.board.LegalMoves(c)
			if !m1.Equal(m2) {
				t.Fatalf("ply %d: %s moves differ", g.Plies(), c)
			}
		}
		playRandom(t, g, rng)
	}
}

func TestLegalMoves_badColor(t *testing.T) {
	b, _ := NewBoard(8)
	if n := b.LegalMoves(Color(5)).Len(); n != 0 {
		t.Errorf("moves for nonsense color: %d", n)
	}
}

func TestPlay_firstMove(t *testing.T) {
	b, _ := NewBoard(8)
	flipped, err := b.Play(Black, Pos(2, 3))
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if flipped != 1 {
		t.Errorf("flipped %d", flipped)
	}
	if c, ok := b.At(Pos(3, 3)); !ok || c != Black {
		t.Errorf("(3, 3) not flipped")
	}
	if c, ok := b.At(Pos(2, 3)); !ok || c != Black {
		t.Errorf("(2, 3) not placed")
	}
	if c, _ := b.At(Pos(4, 4)); c != White {
		t.Errorf("(4, 4) changed")
	}
	black, white := b.Tally()
	if black != 4 || white != 1 {
		t.Errorf("tally %d %d", black, white)
	}
}

func TestPlay_invalidLeavesBoard(t *testing.T) {
	b, _ := NewBoard(8)
	before := b.Clone()

	for _, p := range []Position{Pos(0, 0), Pos(3, 3), Pos(2, 2), Pos(-1, 4), Pos(8, 8)} {
		_, err := b.Play(Black, p)
		if !errors.Is(err, ErrInvalidMove) {
			t.Errorf("%s: wrong error %v", p, err)
		}
	}
	if !reflect.DeepEqual(before.cells, b.cells) {
		t.Errorf("board changed")
	}
}

func TestApplyMove_wrongDirections(t *testing.T) {
	b, _ := NewBoard(8)
	before := b.Clone()

	_, err := b.ApplyMove(Black, Pos(2, 3), []Direction{{0, 1}})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("wrong error: %v", err)
	}
	_, err = b.ApplyMove(Black, Pos(2, 3), []Direction{{1, 0}, {1, 0}})
	if !errors.Is(err, ErrInvalidMove) {
		t.Errorf("wrong error for repeat: %v", err)
	}
	if !reflect.DeepEqual(before.cells, b.cells) {
		t.Errorf("board changed")
	}

	n, err := b.ApplyMove(Black, Pos(2, 3), []Direction{{1, 0}})
	if err != nil || n != 1 {
		t.Errorf("good move refused: %d %v", n, err)
	}
}

func TestApply_noAnchor(t *testing.T) {
	b, _ := NewBoard(8)
	before := b.Clone()

	// runs into an empty cell
	_, err := b.apply(Black, Pos(2, 2), []Direction{{1, 1}, {1, 0}})
	if !errors.Is(err, ErrBoardCorrupt) {
		t.Errorf("wrong error: %v", err)
	}
	// runs off the edge
	_, err = b.apply(Black, Pos(0, 0), []Direction{{-1, 0}})
	if !errors.Is(err, ErrBoardCorrupt) {
		t.Errorf("wrong error at edge: %v", err)
	}
	// not a direction at all
	_, err = b.apply(Black, Pos(2, 3), []Direction{{2, 0}})
	if !errors.Is(err, ErrBoardCorrupt) {
		t.Errorf("wrong error for vector: %v", err)
	}

	if !reflect.DeepEqual(before.cells, b.cells) {
		t.Errorf("board changed")
	}
}

func TestPlay_countsGrow(t *testing.T) {
	for _, size := range []int{4, 6, 8, 10} {
		g, _ := NewGameState(size)
		rng := rand.New(rand.NewSource(int64(size)))

		for !g.IsTerminal() {
			before := g.board.Occupied()
			ply := playRandom(t, g, rng)
			after := g.board.Occupied()

			black, white := g.Tally()
			if black+white != after {
				t.Fatalf("size %d: tally %d+%d but %d occupied", size, black, white, after)
			}
			if ply.Pass {
				if after != before {
					t.Fatalf("size %d: pass changed the board", size)
				}
				continue
			}
			if after != before+1 {
				t.Fatalf("size %d: occupied %d -> %d", size, before, after)
			}
			if ply.Flipped < 1 {
				t.Fatalf("size %d: move flipped nothing", size)
			}
		}

		black, white := g.Tally()
		if black+white > size*size {
			t.Errorf("size %d: too many pawns", size)
		}
	}
}

func TestPlay_flipsExactly(t *testing.T) {
	g, _ := NewGameState(8)
	rng := rand.New(rand.NewSource(99))

	for !g.IsTerminal() {
		mover := g.Mover()
		before := g.board.Clone()
		ply := playRandom(t, g, rng)
		if ply.Pass {
			continue
		}

		changed := 0
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				if before.cells[r][c] != g.board.cells[r][c] {
					changed++
					if g.board.cells[r][c] != pawn(mover) {
						t.Fatalf("ply %d: (%d, %d) became the wrong color", ply.Number, r, c)
					}
				}
			}
		}
		if changed != ply.Flipped+1 {
			t.Fatalf("ply %d: %d cells changed, flipped %d", ply.Number, changed, ply.Flipped)
		}
	}
}

// playRandom passes if it must, else plays any legal move.
func playRandom(t *testing.T, g *GameState, rng *rand.Rand) Ply {
	t.Helper()

	moves := g.LegalMoves()
	if moves.Len() == 0 {
		ply, err := g.Pass()
		if err != nil {
			t.Fatalf("pass error: %v", err)
		}
		return ply
	}

	p, _ := moves.At(rng.Intn(moves.Len()))
	ply, err := g.Play(p)
	if err != nil {
		t.Fatalf("play error at %s: %v", p, err)
	}
	return ply
}
