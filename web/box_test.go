package web

import (
	"testing"
	"time"

	"github.com/undeconstructed/reversi/game"
)

func TestBox(t *testing.T) {
	box := NewBox()
	box.Put(game.Snapshot{Plies: 1})
	_, seen := box.Get()

	go func() {
		time.Sleep(1000)
		box.Put(game.Snapshot{Plies: 2})
	}()

	v, version, ok := box.Wait(seen)
	if !ok {
		t.Fatalf("box closed")
	}
	if v.Plies != 2 || version != seen+1 {
		t.Errorf("wrong value: %d at %d", v.Plies, version)
	}
}

func TestBox_close(t *testing.T) {
	box := NewBox()
	ch := box.Listen(0)
	box.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Errorf("got a value from a closed box")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("close did not wake the listener")
	}
}
