package web

import (
	"sync"

	"github.com/undeconstructed/reversi/game"
)

// Box holds the latest snapshot of a game. The goroutine playing the game
// puts snapshots in, and any number of viewers wait for new ones. Each put
// bumps a version number, which is what waiters compare against.
type Box struct {
	l       *sync.Mutex
	c       *sync.Cond
	v       game.Snapshot
	version uint64
	closed  bool
}

func NewBox() *Box {
	l := &sync.Mutex{}
	c := sync.NewCond(l)
	return &Box{l: l, c: c}
}

// Put replaces the snapshot and wakes everyone waiting.
func (b *Box) Put(v game.Snapshot) {
	b.l.Lock()
	defer b.l.Unlock()
	b.v = v
	b.version++
	b.c.Broadcast()
}

// Get is the latest snapshot and its version. Version 0 means nothing has been
// put yet.
func (b *Box) Get() (game.Snapshot, uint64) {
	b.l.Lock()
	defer b.l.Unlock()
	return b.v, b.version
}

// Wait blocks until there is a version newer than seen, or the box is closed.
// The bool is false once closed.
func (b *Box) Wait(seen uint64) (game.Snapshot, uint64, bool) {
	b.l.Lock()
	defer b.l.Unlock()
	for b.version == seen && !b.closed {
		b.c.Wait()
	}
	return b.v, b.version, !b.closed
}

// Listen is Wait, on a channel.
func (b *Box) Listen(seen uint64) <-chan uint64 {
	ch := make(chan uint64, 1)
	go func() {
		_, v, ok := b.Wait(seen)
		if ok {
			ch <- v
		}
		close(ch)
	}()
	return ch
}

// Close wakes all waiters for good.
func (b *Box) Close() {
	b.l.Lock()
	defer b.l.Unlock()
	b.closed = true
	b.c.Broadcast()
}
