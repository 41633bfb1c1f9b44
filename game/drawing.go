package game

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
)

// Render draws the snapshot as text. Legal moves are marked with letters in
// the order of the legal move set, so that a player can pick one by letter.
func (s Snapshot) Render() string {
	letters := map[Position]byte{}
	for i, p := range s.Moves {
		if i < 26 {
			letters[p] = byte('A' + i)
		}
	}

	var sb strings.Builder

	sb.WriteString("   ")
	for c := 0; c < s.Size; c++ {
		fmt.Fprintf(&sb, " %d", c%10)
	}
	sb.WriteString("\n")

	rule := "   " + strings.Repeat("-", 2*s.Size+1) + "\n"
	sb.WriteString(rule)
	for r, row := range s.Rows {
		fmt.Fprintf(&sb, "%2d |", r)
		for c := 0; c < len(row); c++ {
			if l, ok := letters[Position{r, c}]; ok {
				sb.WriteByte(l)
			} else if row[c] == '.' {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte(row[c])
			}
			sb.WriteByte('|')
		}
		sb.WriteString("\n")
		sb.WriteString(rule)
	}

	return sb.String()
}

// MoveLetter is the letter Render uses for the i'th legal move.
func MoveLetter(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// MoveIndex turns a letter from MoveLetter back into an index.
func MoveIndex(letter string) (int, bool) {
	if len(letter) != 1 {
		return 0, false
	}
	l := letter[0]
	switch {
	case l >= 'A' && l <= 'Z':
		return int(l - 'A'), true
	case l >= 'a' && l <= 'z':
		return int(l - 'a'), true
	}
	return 0, false
}

type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r, c.p.Y+c.r)
}

func (c *circle) At(x, y int) color.Color {
	xx, yy, rr := float64(x-c.p.X)+0.5, float64(y-c.p.Y)+0.5, float64(c.r)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{255}
	}
	return color.Alpha{0}
}

const cellPixels = 40

var (
	feltColor  = color.NRGBA{0, 128, 64, 255}
	gridColor  = color.NRGBA{0, 64, 32, 255}
	hintColor  = color.NRGBA{255, 0, 0, 160}
	blackColor = color.NRGBA{32, 32, 32, 255}
	whiteColor = color.NRGBA{240, 240, 240, 255}
)

// DrawPNG draws the snapshot as a PNG image.
func (s Snapshot) DrawPNG(w io.Writer) error {
	side := s.Size * cellPixels
	img := image.NewNRGBA(image.Rect(0, 0, side+1, side+1))
	draw.Draw(img, img.Bounds(), &image.Uniform{gridColor}, image.Point{}, draw.Src)

	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			box := image.Rect(c*cellPixels+1, r*cellPixels+1, (c+1)*cellPixels, (r+1)*cellPixels)
			draw.Draw(img, box, &image.Uniform{feltColor}, image.Point{}, draw.Src)
		}
	}

	drawCircle := func(p Position, r int, c color.Color) {
		centre := image.Point{p.Col*cellPixels + cellPixels/2, p.Row*cellPixels + cellPixels/2}
		draw.DrawMask(img, img.Bounds(), &image.Uniform{c}, image.Point{}, &circle{centre, r}, image.Point{}, draw.Over)
	}

	for r, row := range s.Rows {
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case 'B':
				drawCircle(Position{r, c}, cellPixels/2-4, blackColor)
			case 'W':
				drawCircle(Position{r, c}, cellPixels/2-4, whiteColor)
			}
		}
	}
	for _, p := range s.Moves {
		drawCircle(p, 4, hintColor)
	}

	return png.Encode(w, img)
}
