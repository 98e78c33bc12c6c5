package noughts

import (
	"github.com/golang/glog"
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/policy"
	"github.com/pkg/errors"
)

// Evaluator plays a table against itself with greedy moves. The weights are never updated,
// though boards the table has not seen are still added to it.
type Evaluator struct {
	*Arena
	enc OutputEncoder
}

// NewEvaluator creates an evaluator of the table. Moves are sent to conf.OutputEncoder, if any.
func NewEvaluator(t *policy.Table, conf Config) *Evaluator {
	return &Evaluator{
		Arena: NewArena(t, true, conf.Name),
		enc:   conf.OutputEncoder,
	}
}

// Evaluate plays the given number of games and counts the outcomes.
func (e *Evaluator) Evaluate(games int) (retVal Tally, err error) {
	if games < 0 {
		return retVal, errors.Errorf("Cannot evaluate %d games", games)
	}
	for e.gameNumber = 0; e.gameNumber < games; e.gameNumber++ {
		var winner game.Player
		if winner, _, err = e.Play(ttt.Pass, e.enc); err != nil {
			return retVal, err
		}
		retVal.Add(winner)
		if glog.V(2) {
			glog.Infof("Evaluation game %d\n%s", e.gameNumber, e.buf.String())
		}
	}
	e.epoch++
	glog.V(1).Infof("Evaluated %d games: %v", games, retVal)
	return retVal, nil
}

// Exhibit plays one greedy game for every opening move of Cross.
func (e *Evaluator) Exhibit() ([]Exhibition, error) {
	retVal := make([]Exhibition, 0, ttt.Size)
	for e.gameNumber = 0; e.gameNumber < ttt.Size; e.gameNumber++ {
		opening := game.Single(e.gameNumber)
		winner, _, err := e.Play(opening, e.enc)
		if err != nil {
			return retVal, errors.WithMessage(err, "Exhibition failed")
		}
		moves := make([]game.PlayerMove, len(e.game.History()))
		copy(moves, e.game.History())
		retVal = append(retVal, Exhibition{
			Opening: opening,
			Board:   e.game.Packed(),
			Winner:  winner,
			Moves:   moves,
		})
	}
	e.epoch++
	return retVal, nil
}
