// Package session plays one networked game between two processes. Each side
// keeps its own game state and they stay in step by sending each other every
// move, or a pass, over one TCP connection.
package session

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/reversi/comms"
	"github.com/undeconstructed/reversi/game"
)

// DefaultPort is where a host listens unless told otherwise.
const DefaultPort = 55555

var (
	// ErrNotYourTurn means the other side is the one to move
	ErrNotYourTurn = &game.GameError{Code: "NOTYOURTURN", Msg: "it's not your turn"}
	// ErrBusy means a receive is already waiting
	ErrBusy = &game.GameError{Code: "BUSY", Msg: "already waiting for the peer"}
	// ErrDivergence means the peer did something that is not possible on
	// this side's board, so the two boards are no longer the same
	ErrDivergence = &game.GameError{Code: "DIVERGENCE", Msg: "peer state has diverged"}
	// ErrConnClosed means the connection is gone
	ErrConnClosed = &game.GameError{Code: "CONNCLOSED", Msg: "connection closed"}
)

// Role is which end of the connection this is.
type Role int

const (
	// Host listens and plays black.
	Host Role = iota
	// Guest connects and plays white.
	Guest
)

func (r Role) String() string {
	if r == Host {
		return "host"
	}
	return "guest"
}

// Color is the color each role always plays.
func (r Role) Color() game.Color {
	if r == Host {
		return game.Black
	}
	return game.White
}

// Session is one end of a networked game. It is not safe for concurrent use:
// one goroutine owns it, and only the blocking read happens elsewhere, see
// Receive.
type Session struct {
	id    string
	role  Role
	conn  net.Conn
	enc   *comms.Encoder
	dec   *comms.Decoder
	state *game.GameState

	pending bool
	closed  bool
	err     error

	log zerolog.Logger
}

// New starts a session over a connection that is already open. Both sides
// must use the same board size, because nothing about the board is sent.
func New(conn net.Conn, role Role, size int) (*Session, error) {
	state, err := game.NewGameState(size)
	if err != nil {
		conn.Close()
		return nil, err
	}

	id := uuid.NewString()
	log := log.With().Str("session", id[:8]).Str("role", role.String()).Logger()
	log.Info().Msgf("playing %s against %v", role.Color(), conn.RemoteAddr())

	return &Session{
		id:    id,
		role:  role,
		conn:  conn,
		enc:   comms.NewEncoder(conn),
		dec:   comms.NewDecoder(conn),
		state: state,
		log:   log,
	}, nil
}

// ID is a random name for the session, used in logs.
func (s *Session) ID() string { return s.id }

// Role is host or guest.
func (s *Session) Role() Role { return s.role }

// Local is the color played on this side.
func (s *Session) Local() game.Color { return s.role.Color() }

// Remote is the color played by the peer.
func (s *Session) Remote() game.Color { return s.role.Color().Opponent() }

// LocalTurn tells if this side is the one to move.
func (s *Session) LocalTurn() bool {
	return !s.state.IsTerminal() && s.state.Mover() == s.Local()
}

// IsTerminal is true once the game has ended.
func (s *Session) IsTerminal() bool { return s.state.IsTerminal() }

// Closed is true once the connection has been closed, for any reason.
func (s *Session) Closed() bool { return s.closed }

// Err is the error that ended the session, if it did not end normally.
func (s *Session) Err() error { return s.err }

// Passes is the number of passes in a row.
func (s *Session) Passes() int { return s.state.Passes() }

// Tally counts pawns on this side's board.
func (s *Session) Tally() (black, white int) { return s.state.Tally() }

// LegalMoves is for whoever is to move.
func (s *Session) LegalMoves() game.LegalMoveSet { return s.state.LegalMoves() }

// MustPass is true when it is this side's turn and there is nowhere to play.
func (s *Session) MustPass() bool { return s.LocalTurn() && s.state.MustPass() }

// Snapshot copies out the game state.
func (s *Session) Snapshot() game.Snapshot { return s.state.Snapshot() }

// Result counts the board.
func (s *Session) Result() game.Result { return s.state.Result() }

// SubmitLocalMove plays a move on this side and sends it to the peer. A move
// that is not legal is refused and nothing is sent.
func (s *Session) SubmitLocalMove(dest game.Position) (game.Ply, error) {
	if err := s.checkLocalTurn(); err != nil {
		return game.Ply{}, err
	}

	ply, err := s.state.Play(dest)
	if err != nil {
		return game.Ply{}, err
	}

	s.log.Debug().Msgf("local %v", ply)
	return ply, s.send(comms.Move(dest))
}

// SubmitPass passes on this side and tells the peer.
func (s *Session) SubmitPass() (game.Ply, error) {
	if err := s.checkLocalTurn(); err != nil {
		return game.Ply{}, err
	}

	ply, err := s.state.Pass()
	if err != nil {
		return game.Ply{}, err
	}

	s.log.Debug().Msgf("local %v", ply)
	return ply, s.send(comms.NoMove())
}

func (s *Session) checkLocalTurn() error {
	if s.closed {
		return ErrConnClosed
	}
	if s.state.IsTerminal() {
		return game.ErrGameOver
	}
	if s.pending || s.state.Mover() != s.Local() {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) checkRemoteTurn() error {
	if s.closed {
		return ErrConnClosed
	}
	if s.state.IsTerminal() {
		return game.ErrGameOver
	}
	if s.pending {
		return ErrBusy
	}
	if s.state.Mover() != s.Remote() {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) send(m comms.Message) error {
	err := s.enc.Encode(m)
	if err != nil {
		return s.fail(fmt.Errorf("%w: send: %v", ErrConnClosed, err))
	}
	s.endIfOver()
	return nil
}

// Incoming is what one receive got. It is only useful for handing to Apply.
type Incoming struct {
	msg comms.Message
	err error
	// early is set when the receive was refused without reading anything
	early bool
}

// Receive starts the blocking read for the peer's next message in a new
// goroutine, and returns at once. The result arrives on the channel, and must
// then be passed to Apply on the goroutine that owns the session. Only one
// receive can be waiting at a time. There is no timeout; Close is the only way
// to stop waiting.
func (s *Session) Receive() <-chan Incoming {
	ch := make(chan Incoming, 1)

	if err := s.checkRemoteTurn(); err != nil {
		ch <- Incoming{err: err, early: true}
		close(ch)
		return ch
	}

	s.pending = true
	dec := s.dec
	go func() {
		msg, err := dec.Decode()
		ch <- Incoming{msg: msg, err: err}
		close(ch)
	}()

	return ch
}

// Apply plays the peer's move, or pass, from a finished receive onto this
// side's game. Any problem with what was received ends the session.
func (s *Session) Apply(in Incoming) (game.Ply, error) {
	if in.early {
		return game.Ply{}, in.err
	}
	s.pending = false

	if s.closed {
		return game.Ply{}, ErrConnClosed
	}

	if in.err != nil {
		switch {
		case errors.Is(in.err, io.EOF):
			s.log.Info().Msg("peer closed the connection")
			return game.Ply{}, s.fail(ErrConnClosed)
		case errors.Is(in.err, comms.ErrProtocol):
			return game.Ply{}, s.fail(in.err)
		default:
			return game.Ply{}, s.fail(fmt.Errorf("%w: receive: %v", ErrConnClosed, in.err))
		}
	}

	var ply game.Ply
	var err error
	if in.msg.Pass {
		ply, err = s.state.Pass()
	} else {
		ply, err = s.state.Play(in.msg.Position)
	}
	if err != nil {
		return game.Ply{}, s.fail(fmt.Errorf("%w: peer sent %q: %v", ErrDivergence, in.msg, err))
	}

	s.log.Debug().Msgf("remote %v", ply)
	s.endIfOver()
	return ply, nil
}

// AwaitRemoteMove waits for the peer's next move or pass and applies it.
func (s *Session) AwaitRemoteMove() (game.Ply, error) {
	return s.Apply(<-s.Receive())
}

func (s *Session) endIfOver() {
	if !s.state.IsTerminal() {
		return
	}
	r := s.state.Result()
	s.log.Info().Msgf("game over: black %d, white %d, %s", r.Black, r.White, r.Outcome)
	s.Close()
}

// fail ends the session because of err, and returns it.
func (s *Session) fail(err error) error {
	s.log.Error().Err(err).Msg("session failed")
	if s.err == nil {
		s.err = err
	}
	s.Close()
	return err
}

// Close closes the connection. A receive that is waiting will finish with an
// error.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
