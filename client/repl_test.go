package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/reversi/game"
	"github.com/undeconstructed/reversi/session"
	"github.com/undeconstructed/reversi/web"
)

// script feeds lines to the repl as though typed.
type script struct {
	lines   []string
	prompts []string
}

func (s *script) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *script) SetPrompt(p string) {
	s.prompts = append(s.prompts, p)
}

func TestLocal(t *testing.T) {
	g, err := game.NewGameState(8)
	require.NoError(t, err)

	in := &script{lines: []string{"moves", "play A", "play 2 2", "score", "quit"}}
	out := &bytes.Buffer{}
	box := web.NewBox()

	err = newRepl(in, out, box).local(context.Background(), g)
	require.NoError(t, err)

	black, white := g.Tally()
	assert.Equal(t, 3, black)
	assert.Equal(t, 3, white)

	text := out.String()
	assert.Contains(t, text, "A: (2, 3) flips along")
	assert.Contains(t, text, "1: black plays (2, 3), flips 1")
	assert.Contains(t, text, "2: white plays (2, 2), flips 1")
	assert.Contains(t, text, "Number of black pawns: 3\nNumber of white pawns: 3\n")

	snap, _ := box.Get()
	assert.Equal(t, 2, snap.Plies)
	assert.Equal(t, game.Black, snap.Mover)
}

func TestLocal_badInput(t *testing.T) {
	g, err := game.NewGameState(8)
	require.NoError(t, err)

	in := &script{lines: []string{"play Z", "play 0 0", "pass", "dance", ""}}
	out := &bytes.Buffer{}

	err = newRepl(in, out, nil).local(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, 0, g.Plies())
	text := out.String()
	assert.Contains(t, text, "Error: no move Z")
	assert.Contains(t, text, "Error: "+game.ErrInvalidMove.Error())
	assert.Contains(t, text, "Error: "+game.ErrCannotPass.Error())
	assert.Contains(t, text, "unknown, try help")
}

func TestLocal_boardOnce(t *testing.T) {
	g, err := game.NewGameState(8)
	require.NoError(t, err)

	in := &script{lines: []string{"score", "score", "board"}}
	out := &bytes.Buffer{}

	err = newRepl(in, out, nil).local(context.Background(), g)
	require.NoError(t, err)

	// once at the start, once more when asked
	header := strings.SplitN(g.Snapshot().Render(), "\n", 2)[0]
	assert.Equal(t, 2, strings.Count(out.String(), header+"\n"))
}

func TestPickMove(t *testing.T) {
	g, err := game.NewGameState(8)
	require.NoError(t, err)
	moves := g.LegalMoves()

	p, err := pickMove([]string{"b"}, moves)
	require.NoError(t, err)
	assert.Equal(t, game.Pos(3, 2), p)

	p, err = pickMove([]string{"5", "4"}, moves)
	require.NoError(t, err)
	assert.Equal(t, game.Pos(5, 4), p)

	// positions are not checked here, the game does that
	p, err = pickMove([]string{"0", "0"}, moves)
	require.NoError(t, err)
	assert.Equal(t, game.Pos(0, 0), p)

	for _, args := range [][]string{nil, {"E"}, {"?"}, {"a", "b"}, {"1", "2", "3"}} {
		_, err := pickMove(args, moves)
		assert.Error(t, err, "%v", args)
	}
}

func TestNetwork(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l, err := session.Listen(ctx, "127.0.0.1", 0, 8)
	require.NoError(t, err)

	hostCh := make(chan *session.Session, 1)
	go func() {
		s, err := l.Accept()
		if err != nil {
			hostCh <- nil
			return
		}
		hostCh <- s
	}()

	port := l.Addr().(*net.TCPAddr).Port
	guest, err := session.ConnectSession(ctx, "127.0.0.1", port, 8)
	require.NoError(t, err)

	host := <-hostCh
	require.NotNil(t, host)

	in := &script{lines: []string{"play A"}}
	out := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() {
		done <- newRepl(in, out, nil).network(ctx, host)
	}()

	ply, err := guest.AwaitRemoteMove()
	require.NoError(t, err)
	assert.Equal(t, game.Pos(2, 3), ply.Position)
	guest.Close()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, session.ErrConnClosed), "%v", err)
	case <-ctx.Done():
		t.Fatal("repl did not notice the peer leaving")
	}

	text := out.String()
	assert.Contains(t, text, "you are black")
	assert.Contains(t, text, "1: black plays (2, 3), flips 1")
	assert.Contains(t, text, "waiting for white...")
}
