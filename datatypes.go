package noughts

import (
	"fmt"

	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/policy"
)

type Config struct {
	Name        string
	PolicyConf  policy.Config
	ReportEvery int // record training statistics every this many games. 0 disables it

	// extensions
	OutputEncoder OutputEncoder // receives every move of evaluation games
}

// DefaultConfig is a tic-tac-toe run with the default policy config.
func DefaultConfig() Config {
	return Config{
		Name:        "Tic Tac Toe",
		PolicyConf:  policy.DefaultConfig(),
		ReportEvery: 10000,
	}
}

func (c Config) IsValid() bool { return c.PolicyConf.IsValid() && c.ReportEvery >= 0 }

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

// Tally counts the outcomes of a series of games.
type Tally struct {
	XWins int
	OWins int
	Draws int
}

// Add records the outcome of a game. A winner of None is a draw.
func (t *Tally) Add(winner game.Player) {
	switch winner {
	case ttt.Cross:
		t.XWins++
	case ttt.Nought:
		t.OWins++
	default:
		t.Draws++
	}
}

// Games is the number of games counted.
func (t Tally) Games() int { return t.XWins + t.OWins + t.Draws }

// DrawRate is the fraction of games that were drawn.
func (t Tally) DrawRate() float32 {
	if t.Games() == 0 {
		return 0
	}
	return float32(t.Draws) / float32(t.Games())
}

func (t Tally) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "X wins %d, O wins %d, draws %d", t.XWins, t.OWins, t.Draws)
}

// Exhibition is a greedy game whose first move was forced.
type Exhibition struct {
	Opening game.Single
	Board   ttt.Board // final board
	Winner  game.Player
	Moves   []game.PlayerMove
}
