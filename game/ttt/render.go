package ttt

import (
	"bytes"
	"fmt"

	"github.com/gorgonia/noughts/game"
	"github.com/pkg/errors"
)

const divider = "----------\n"

var symbol = [...]byte{' ', 'X', 'O'}

// Render draws the board for a console: a divider, three rows of comma separated marks
// (a space for an empty cell) and a closing divider.
func Render(b Board) string {
	var buf bytes.Buffer
	buf.WriteString(divider)
	for row := 0; row < Width; row++ {
		for col := 0; col < Width; col++ {
			buf.WriteByte(symbol[b.Get(game.Single(row*Width+col))])
			if col < Width-1 {
				buf.WriteString(", ")
			}
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(divider)
	return buf.String()
}

// Parse reads a board written as nine cells in row-major order. X and O (either case)
// are marks; '.', '-', '_' and '·' are empty cells. Whitespace, '|', ',' and the grid
// glyphs '⎢' and '⎥' are ignored, so the output of "%s" parses back.
func Parse(s string) (Board, error) {
	var b Board
	var pos game.Single
	for _, r := range s {
		var c game.Colour
		switch r {
		case 'X', 'x':
			c = game.Black
		case 'O', 'o':
			c = game.White
		case '.', '-', '_', '·':
			c = game.None
		case ' ', '\t', '\n', '\r', '|', ',', '⎢', '⎥':
			continue
		default:
			return 0, errors.Errorf("Unexpected %q at cell %d", r, pos)
		}
		if pos >= Size {
			return 0, errors.Errorf("Too many cells in %q. Expected %d", s, Size)
		}
		b = b.Set(pos, c)
		pos++
	}
	if pos != Size {
		return 0, errors.Errorf("Expected %d cells. Got %d", Size, pos)
	}
	return b, nil
}

// MustParse is like Parse but panics on malformed input. Useful for fixtures.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return b
}
