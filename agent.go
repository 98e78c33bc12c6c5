package noughts

import (
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/policy"
)

// An Agent plays one side of a game from a policy table. Both agents of an arena share the
// same table.
type Agent struct {
	Table  *policy.Table
	Player game.Player
	Greedy bool // always play the best move instead of sampling

	// Statistics
	Wins int
	Loss int
	Draw int

	name string
}

// Move picks a move for the board.
func (a *Agent) Move(b ttt.Board) policy.Move {
	e := a.Table.EntryFor(b)
	if a.Greedy {
		return policy.Move{Entry: e, Pos: a.Table.BestMove(e)}
	}
	return policy.Move{Entry: e, Pos: a.Table.SampleMove(e)}
}

// Generate returns the agent's move in g. It is the move generator of the text protocol.
func (a *Agent) Generate(g *ttt.Game) game.PlayerMove {
	return game.PlayerMove{Player: g.ToMove(), Single: a.Move(g.Packed()).Pos}
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
}
