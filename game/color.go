package game

import (
	"fmt"
	"strings"
)

// Color is the color of a pawn, and of the player who owns it.
type Color int

const (
	Black Color = 0
	White Color = 1
)

// Valid is true only for Black and White.
func (c Color) Valid() bool {
	return c == Black || c == White
}

// Opponent is the other color.
func (c Color) Opponent() Color {
	return 1 - c
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrBadColor
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	c0, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = c0
	return nil
}

// ParseColor reads "black" or "white", in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	}
	return Black, ErrBadColor
}
