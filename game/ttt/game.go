package ttt

import (
	"fmt"

	"github.com/gorgonia/noughts/game"
)

// Pass is the move reported when nothing has been played yet.
var Pass = game.Single(-1)

var _ game.State = &Game{}

// Game is a tic-tac-toe game in progress: a packed board plus the moves that led to it.
type Game struct {
	board      Board
	nextToMove game.Player
	history    []game.PlayerMove
}

// New creates a new game with Cross to move.
func New() *Game {
	return &Game{
		nextToMove: Cross,
		history:    make([]game.PlayerMove, 0, Size),
	}
}

func (g *Game) Format(s fmt.State, c rune) { g.board.Format(s, c) }

// Packed returns the current board.
func (g *Game) Packed() Board { return g.board }

func (g *Game) BoardSize() (int, int) { return Width, Width }
func (g *Game) Board() []game.Colour  { return g.board.Cells() }
func (g *Game) ActionSpace() int      { return Size }
func (g *Game) ToMove() game.Player   { return g.nextToMove }
func (g *Game) MoveNumber() int       { return len(g.history) }

// SetToMove sets the next player to move.
func (g *Game) SetToMove(p game.Player) { g.nextToMove = p }

func (g *Game) LastMove() game.PlayerMove {
	if len(g.history) > 0 {
		return g.history[len(g.history)-1]
	}
	return game.PlayerMove{Player: game.Player(game.None), Single: Pass}
}

// History returns the moves played so far. The returned slice must not be modified.
func (g *Game) History() []game.PlayerMove { return g.history }

// Check returns true if the move may be played: the game is still going, the player is a
// real player and the cell is on the board and empty.
func (g *Game) Check(m game.PlayerMove) bool {
	if m.Player != Cross && m.Player != Nought {
		return false
	}
	if m.Single < 0 || int(m.Single) >= Size {
		return false
	}
	if g.board.IsTerminal() {
		return false
	}
	return g.board.Get(m.Single) == game.None
}

// Apply plays the move. Illegal moves leave the game unchanged.
func (g *Game) Apply(m game.PlayerMove) game.State {
	if !g.Check(m) {
		return g // no change to the state
	}
	g.board = g.board.Set(m.Single, game.Colour(m.Player))
	g.history = append(g.history, m)
	g.nextToMove = m.Player.Opponent()
	return g
}

// Score is 1 for a win, -1 for a loss and 0 otherwise.
func (g *Game) Score(p game.Player) float32 {
	switch ended, winner := g.board.Ended(); {
	case !ended || winner == game.Player(game.None):
		return 0
	case winner == p:
		return 1
	}
	return -1
}

func (g *Game) Ended() (ended bool, winner game.Player) { return g.board.Ended() }

func (g *Game) Reset() {
	g.board = Empty()
	g.history = g.history[:0]
	g.nextToMove = Cross
}

// UndoLastMove takes back the last move. The player who made it is to move again.
func (g *Game) UndoLastMove() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	g.board = g.board.Set(last.Single, game.None)
	g.history = g.history[:len(g.history)-1]
	g.nextToMove = last.Player
}

func (g *Game) Eq(other game.State) bool {
	ot, ok := other.(*Game)
	if !ok {
		return false
	}
	return g.board == ot.board && g.nextToMove == ot.nextToMove
}

func (g *Game) Clone() game.State {
	retVal := &Game{
		board:      g.board,
		nextToMove: g.nextToMove,
		history:    make([]game.PlayerMove, len(g.history), Size),
	}
	copy(retVal.history, g.history)
	return retVal
}
