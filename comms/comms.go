// Package comms is the wire format between two peers. Each message is one
// short line of UTF-8 text, written in one go, and read with one receive of
// at most MaxMessage bytes. There is no other framing.
package comms

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/undeconstructed/reversi/game"
)

const (
	// MaxMessage is the size of the receive buffer.
	MaxMessage = 128
	// NoMoveText is sent instead of a position when a player passes.
	NoMoveText = "NO MOVE"
)

var (
	// ErrProtocol means a message could not be understood
	ErrProtocol = &game.GameError{Code: "PROTOCOL", Msg: "malformed message"}
	// ErrTooLong means a message would not fit the receiver's buffer
	ErrTooLong = &game.GameError{Code: "TOOLONG", Msg: "message too long"}
)

// Message is either a move to a position, or a pass.
type Message struct {
	Pass     bool
	Position game.Position
}

// Move is a message for moving to p.
func Move(p game.Position) Message {
	return Message{Position: p}
}

// NoMove is the pass message.
func NoMove() Message {
	return Message{Pass: true}
}

func (m Message) String() string {
	if m.Pass {
		return NoMoveText
	}
	return m.Position.String()
}

var movePattern = regexp.MustCompile(`^\(\s*(\d{1,4})\s*,\s*(\d{1,4})\s*\)$`)

// Parse reads a message. Only the pass text and a pair of non-negative
// integers in brackets are accepted, nothing is ever evaluated.
func Parse(data []byte) (Message, error) {
	text := string(data)
	if text == NoMoveText {
		return NoMove(), nil
	}

	m := movePattern.FindStringSubmatch(text)
	if m == nil {
		return Message{}, fmt.Errorf("%w: %q", ErrProtocol, text)
	}

	row, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	return Move(game.Pos(row, col)), nil
}

// Encoder writes messages.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the message with a single write.
func (e *Encoder) Encode(m Message) error {
	if !m.Pass && (m.Position.Row < 0 || m.Position.Col < 0) {
		return fmt.Errorf("%w: %s", ErrProtocol, m.Position)
	}
	data := []byte(m.String())
	if len(data) > MaxMessage {
		return fmt.Errorf("%w: %d bytes", ErrTooLong, len(data))
	}
	_, err := e.w.Write(data)
	return err
}

// Decoder reads messages.
type Decoder struct {
	r   io.Reader
	buf [MaxMessage]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode does one receive. If the other end has closed, the error is io.EOF.
func (d *Decoder) Decode() (Message, error) {
	n, err := d.r.Read(d.buf[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return Message{}, io.EOF
		}
		return Message{}, err
	}
	return Parse(d.buf[:n])
}
