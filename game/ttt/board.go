// Package ttt implements 3×3 tic-tac-toe boards packed into a single integer.
//
// A Board is a value. Each of the 9 cells, addressed row-major from 0 (top left)
// to 8 (bottom right), occupies a 2-bit field: bits 2p and 2p+1 hold the
// game.Colour of cell p. The fourth code (3) is never produced.
package ttt

import (
	"fmt"

	"github.com/gorgonia/noughts/game"
)

const (
	// Size is the number of cells on the board.
	Size = 9
	// Width is the number of cells in a row.
	Width = 3

	fieldBits = 2
	fieldMask = 0x3
)

var (
	Cross  = game.Player(game.Black)
	Nought = game.Player(game.White)
)

// lines enumerates the winning triples: rows, then columns, then the two diagonals.
// The order decides which line is reported when more than one is complete.
var lines = [8][3]game.Single{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a packed 3×3 board.
type Board uint32

// Empty returns the board with no marks on it.
func Empty() Board { return 0 }

// Get returns the colour at pos.
func (b Board) Get(pos game.Single) game.Colour {
	checkPos(pos)
	return game.Colour((b >> (fieldBits * uint(pos))) & fieldMask)
}

// Set returns a new board with the cell at pos overwritten by c. Occupancy is not checked.
func (b Board) Set(pos game.Single, c game.Colour) Board {
	checkPos(pos)
	if !c.IsValid() {
		panic(fmt.Sprintf("Cannot set cell %d to invalid colour %d", pos, int32(c)))
	}
	shift := fieldBits * uint(pos)
	return b&^(fieldMask<<shift) | Board(c)<<shift
}

// IsEmpty returns true if no cell is occupied.
func (b Board) IsEmpty() bool { return b == 0 }

// IsFull returns true if all cells are occupied.
func (b Board) IsFull() bool {
	for i := 0; i < Size; i++ {
		if (b>>(fieldBits*uint(i)))&fieldMask == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b Board) Count() (retVal int) {
	for i := 0; i < Size; i++ {
		if (b>>(fieldBits*uint(i)))&fieldMask != 0 {
			retVal++
		}
	}
	return
}

// ToMove returns the player whose turn it is, assuming Cross moved first and turns alternated.
func (b Board) ToMove() game.Player {
	if b.Count()%2 == 0 {
		return Cross
	}
	return Nought
}

// Winner returns the colour holding a complete line, or None.
func (b Board) Winner() game.Colour {
	for _, l := range lines {
		c := b.Get(l[0])
		if c != game.None && c == b.Get(l[1]) && c == b.Get(l[2]) {
			return c
		}
	}
	return game.None
}

// IsTerminal returns true if the board is won or full.
func (b Board) IsTerminal() bool { return b.Winner() != game.None || b.IsFull() }

// Ended checks if the game has ended. If it has, who is the winner? A draw is reported as None.
func (b Board) Ended() (ended bool, winner game.Player) {
	if w := b.Winner(); w != game.None {
		return true, game.Player(w)
	}
	return b.IsFull(), game.Player(game.None)
}

// Cells unpacks the board.
func (b Board) Cells() []game.Colour {
	retVal := make([]game.Colour, Size)
	for i := range retVal {
		retVal[i] = b.Get(game.Single(i))
	}
	return retVal
}

// Format prints the board as a grid. The integer verbs print the packed key instead.
func (b Board) Format(s fmt.State, c rune) {
	switch c {
	case 'd':
		fmt.Fprintf(s, "%d", uint32(b))
		return
	case 'x':
		fmt.Fprintf(s, "%#05x", uint32(b))
		return
	}
	for i := 0; i < Size; i++ {
		if i%Width == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%s ", b.Get(game.Single(i)))
		if (i+1)%Width == 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}
