package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/undeconstructed/reversi/game"
	"github.com/undeconstructed/reversi/session"
	"github.com/undeconstructed/reversi/web"

	rl "github.com/chzyer/readline"
)

const (
	GREY  = "[90m"
	WHITE = "[97m"
)

func col(c game.Color) string {
	switch c {
	case game.Black:
		return GREY
	case game.White:
		return WHITE
	default:
		return "[0m"
	}
}

var completer = rl.NewPrefixCompleter(
	rl.PcItem("board"),
	rl.PcItem("moves"),
	rl.PcItem("play"),
	rl.PcItem("pass"),
	rl.PcItem("score"),
	rl.PcItem("new"),
	rl.PcItem("help"),
	rl.PcItem("quit"),
)

const helpText = `board              show the board, legal moves are lettered
moves              list the legal moves
play <letter>      play a lettered move
play <row> <col>   play at a position
pass               pass, only when there is no move
score              count the pawns
new                start again (local games only)
quit               leave
`

// lineReader is the part of readline that the repl uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

type repl struct {
	in  lineReader
	out io.Writer
	box *web.Box

	// shown is the ply number of the board last drawn
	shown int
}

func newRepl(in lineReader, out io.Writer, box *web.Box) *repl {
	return &repl{in: in, out: out, box: box, shown: -1}
}

// readCommand gets the next command. ok is false when the user is leaving.
func (r *repl) readCommand(prompt string) (cmd string, args []string, ok bool) {
	r.in.SetPrompt(prompt)

	for {
		line, err := r.in.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				return "", nil, false
			}
			continue
		} else if err != nil {
			return "", nil, false
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return "", nil, true
		}
		return strings.ToLower(fields[0]), fields[1:], true
	}
}

func makePrompt(s game.Snapshot) string {
	return fmt.Sprintf("%d \033%s%s»\033[0m ", s.Plies+1, col(s.Mover), s.Mover)
}

// show publishes the snapshot, and draws it if it is new.
func (r *repl) show(s game.Snapshot) bool {
	if r.box != nil {
		r.box.Put(s)
	}
	if s.Plies == r.shown {
		return false
	}
	fmt.Fprint(r.out, s.Render())
	r.shown = s.Plies
	return true
}

func (r *repl) printMoves(s game.Snapshot, moves game.LegalMoveSet) {
	if moves.Len() == 0 {
		fmt.Fprintf(r.out, "%s has no moves\n", s.Mover)
		return
	}
	for i, p := range moves.Positions() {
		dirs, _ := moves.Directions(p)
		fmt.Fprintf(r.out, "%s: %s flips along %v\n", game.MoveLetter(i), p, dirs)
	}
}

func (r *repl) printScore(black, white int) {
	fmt.Fprintf(r.out, "Number of black pawns: %d\nNumber of white pawns: %d\n", black, white)
}

func (r *repl) printResult(res game.Result) {
	fmt.Fprintf(r.out, "GAME OVER\n")
	r.printScore(res.Black, res.White)
	switch res.Outcome {
	case game.BlackWins:
		fmt.Fprintf(r.out, "Black wins\n")
	case game.WhiteWins:
		fmt.Fprintf(r.out, "White wins\n")
	default:
		fmt.Fprintf(r.out, "Draw\n")
	}
}

// pickMove understands "A" or "2 3".
func pickMove(args []string, moves game.LegalMoveSet) (game.Position, error) {
	switch len(args) {
	case 1:
		i, ok := game.MoveIndex(args[0])
		if !ok {
			return game.Position{}, fmt.Errorf("not a move letter: %s", args[0])
		}
		p, ok := moves.At(i)
		if !ok {
			return game.Position{}, fmt.Errorf("no move %s", strings.ToUpper(args[0]))
		}
		return p, nil
	case 2:
		row, err1 := strconv.Atoi(args[0])
		col, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return game.Position{}, errors.New("play <row> <col>")
		}
		return game.Pos(row, col), nil
	default:
		return game.Position{}, errors.New("play <letter> or play <row> <col>")
	}
}

// local runs a game with both players at this terminal.
func (r *repl) local(ctx context.Context, g *game.GameState) error {
	for ctx.Err() == nil {
		snap := g.Snapshot()
		fresh := r.show(snap)

		if g.MustPass() {
			ply, err := g.Pass()
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "%s can't play.\n", ply.Color)
			continue
		}

		prompt := makePrompt(snap)
		if g.IsTerminal() {
			if fresh {
				r.printResult(g.Result())
				fmt.Fprintf(r.out, "new to play again, quit to leave\n")
			}
			prompt = "» "
		}

		cmd, args, ok := r.readCommand(prompt)
		if !ok {
			return nil
		}

		switch cmd {
		case "":
		case "board":
			r.shown = -1
		case "moves":
			r.printMoves(snap, g.LegalMoves())
		case "play":
			p, err := pickMove(args, g.LegalMoves())
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
				continue
			}
			ply, err := g.Play(p)
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(r.out, "%s\n", ply)
		case "pass":
			_, err := g.Pass()
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
		case "score":
			r.printScore(g.Tally())
		case "new":
			g.Reset()
			r.shown = -1
		case "help":
			fmt.Fprint(r.out, helpText)
		case "quit":
			return nil
		default:
			fmt.Fprintf(r.out, "unknown, try help\n")
		}
	}

	return ctx.Err()
}

// network runs this side of a networked game. While the peer is moving no
// input is read; the receive happens on another goroutine and its result is
// applied here.
func (r *repl) network(ctx context.Context, s *session.Session) error {
	fmt.Fprintf(r.out, "you are %s\n", s.Local())

	for {
		snap := s.Snapshot()
		r.show(snap)

		if s.IsTerminal() {
			r.printResult(s.Result())
			return nil
		}
		if s.Closed() {
			if err := s.Err(); err != nil {
				return err
			}
			return session.ErrConnClosed
		}

		if !s.LocalTurn() {
			fmt.Fprintf(r.out, "waiting for %s...\n", s.Remote())
			select {
			case in := <-s.Receive():
				ply, err := s.Apply(in)
				if err != nil {
					return err
				}
				if ply.Pass {
					fmt.Fprintf(r.out, "%s can't play.\n", ply.Color)
				} else {
					fmt.Fprintf(r.out, "%s\n", ply)
				}
			case <-ctx.Done():
				s.Close()
				return ctx.Err()
			}
			continue
		}

		if s.MustPass() {
			ply, err := s.SubmitPass()
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "%s can't play.\n", ply.Color)
			continue
		}

		cmd, args, ok := r.readCommand(makePrompt(snap))
		if !ok {
			return nil
		}

		switch cmd {
		case "":
		case "board":
			r.shown = -1
		case "moves":
			r.printMoves(snap, s.LegalMoves())
		case "play":
			p, err := pickMove(args, s.LegalMoves())
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
				continue
			}
			ply, err := s.SubmitLocalMove(p)
			if err != nil {
				if errors.Is(err, game.ErrInvalidMove) {
					fmt.Fprintf(r.out, "Error: %v\n", err)
					continue
				}
				return err
			}
			fmt.Fprintf(r.out, "%s\n", ply)
		case "pass":
			_, err := s.SubmitPass()
			if err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
		case "score":
			r.printScore(s.Tally())
		case "new":
			fmt.Fprintf(r.out, "not in a networked game\n")
		case "help":
			fmt.Fprint(r.out, helpText)
		case "quit":
			return nil
		default:
			fmt.Fprintf(r.out, "unknown, try help\n")
		}
	}
}
