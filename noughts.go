// Package noughts teaches a table of move weights to play tic-tac-toe by self-play.
//
// A Trainer plays both sides of many games from one policy.Table, sampling moves from the
// weights and reinforcing the moves of every finished game. An Evaluator plays the learned
// table against itself greedily and counts the outcomes.
package noughts

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/gorgonia/noughts/policy"
	"github.com/pkg/errors"
)

// Trainer is the top level structure of a training run. It owns the policy table.
type Trainer struct {
	// state
	Arena
	Statistics
	table *policy.Table
	moves int // total moves played

	// config
	conf Config
}

// New creates a trainer with an empty table. It panics if the config is not valid.
func New(conf Config) *Trainer {
	if !conf.IsValid() {
		panic(fmt.Sprintf("Config %+v is not valid. Unable to proceed", conf))
	}
	t := policy.NewTable(conf.PolicyConf)
	return &Trainer{
		Arena:      MakeArena(t, false, conf.Name),
		Statistics: makeStatistics(),
		table:      t,
		conf:       conf,
	}
}

// Table returns the table being trained.
func (t *Trainer) Table() *policy.Table { return t.table }

// Moves returns the number of moves played in all calls to Learn.
func (t *Trainer) Moves() int { return t.moves }

// Learn plays games of self-play, reinforcing the table after each one.
func (t *Trainer) Learn(games int) error {
	if games < 0 {
		return errors.Errorf("Cannot learn from %d games", games)
	}
	start := time.Now()
	t.A.resetStats()
	t.B.resetStats()
	glog.V(1).Infof("Self play for epoch %d: %d games. Policy %+v", t.epoch, games, t.conf.PolicyConf)

	var played int
	for t.gameNumber = 0; t.gameNumber < games; t.gameNumber++ {
		winner, traj, err := t.Play(ttt.Pass, nil)
		if err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Self play failed at game %d", t.gameNumber))
		}
		t.table.Reinforce(traj, winner)
		t.moves += len(traj)
		played++

		if t.conf.ReportEvery > 0 && played == t.conf.ReportEvery {
			t.report(played)
			played = 0
		}
	}
	if played > 0 && t.conf.ReportEvery > 0 {
		t.report(played)
	}

	glog.Infof("Epoch %d: %d games in %v. %d moves, %d boards", t.epoch, games, time.Since(start), t.moves, t.table.Len())
	t.epoch++
	return nil
}

func (t *Trainer) report(played int) {
	tally := Tally{XWins: t.A.Wins, OWins: t.B.Wins, Draws: t.A.Draw}
	t.update(t.epoch, played, t.table.Len(), tally)
	glog.V(1).Infof("\tGame %d: %v. %d boards", t.gameNumber+1, tally, t.table.Len())
	t.A.resetStats()
	t.B.resetStats()
}
