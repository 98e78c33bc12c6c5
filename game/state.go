package game

import (
	"fmt"
)

// Colour is the content of a single cell. The numeric values are the 2-bit codes
// used by packed boards, so they must not be reordered.
type Colour int32

const (
	None Colour = iota
	Black
	White
)

// IsValid returns true if the colour is one of None, Black or White.
func (cl Colour) IsValid() bool { return cl >= None && cl <= White }

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		default:
			fmt.Fprintf(s, "Colour(%d)", int32(cl))
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		default:
			fmt.Fprint(s, "?")
		}
	}
}

// Player represents a player. It's also a colour.
type Player Colour

// Opponent returns the other player. It panics for anything that isn't Black or White.
func (p Player) Opponent() Player {
	switch Colour(p) {
	case Black:
		return Player(White)
	case White:
		return Player(Black)
	}
	panic(fmt.Sprintf("Player %v has no opponent", p))
}

func (p Player) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch Colour(p) {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch Colour(p) {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Single represents a cell as a single number, in a rowmajor fashion.
//		- 0 represents the top left
//		- 2 represents the top right
//		- 3 represents (1, 0)
// 		- -1 represents "no move"
type Single int32

// IsPass returns true when the coordinate represents "no move"
func (c Single) IsPass() bool { return c == -1 }

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// State is any game that is able to report back on itself.
type State interface {
	BoardSize() (int, int) // returns the board size
	Board() []Colour       // returns the board state
	ActionSpace() int      // returns the number of permissible actions
	ToMove() Player        // returns the next player to move
	MoveNumber() int       // returns count of moves so far that led to this point.
	LastMove() PlayerMove  // returns the last move that was made

	Score(p Player) float32             // score of the given player
	Ended() (ended bool, winner Player) // has the game ended? if yes, then who's the winner?

	Check(m PlayerMove) bool // check if the placement is legal
	Apply(m PlayerMove) State
	Reset()
	UndoLastMove()

	Eq(other State) bool
	Clone() State
}

// MetaState is the state of a series of games, as seen by an output encoder.
type MetaState interface {
	Name() string // name of the run
	Epoch() int
	GameNumber() int
	Score(a Player) float64
	State() State
}
