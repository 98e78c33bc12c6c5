// Package policy holds the learned move weights: a table from packed boards to per-cell
// weights, move selection from those weights, and the end-of-game reinforcement rule.
package policy

import (
	"fmt"
	"sort"
	"time"

	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	rng "github.com/leesper/go_rng"
)

// Move is a cell picked from an entry during a game.
type Move struct {
	Entry *Entry
	Pos   game.Single
}

// Trajectory is the sequence of moves of a single game. Cross made the move at index 0 and
// the sides alternate from there.
type Trajectory []Move

// Table maps boards to their entries. Entries are created on first use and live as long as
// the table.
type Table struct {
	conf    Config
	entries map[ttt.Board]*Entry
	urng    *rng.UniformGenerator
}

// NewTable creates an empty table. It panics if the config is not valid.
func NewTable(conf Config) *Table {
	if !conf.IsValid() {
		panic(fmt.Sprintf("Policy config %+v is not valid. Unable to proceed", conf))
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Table{
		conf:    conf,
		entries: make(map[ttt.Board]*Entry, 8192),
		urng:    rng.NewUniformGenerator(seed),
	}
}

// Config returns the config the table was created with.
func (t *Table) Config() Config { return t.conf }

// Len returns the number of boards seen so far.
func (t *Table) Len() int { return len(t.entries) }

// EntryFor returns the entry of b, creating it if b has not been seen before.
func (t *Table) EntryFor(b ttt.Board) *Entry {
	if e, ok := t.entries[b]; ok {
		return e
	}
	e := newEntry(b, t.conf.InitialWeight)
	t.entries[b] = e
	return e
}

// Lookup returns the entry of b without creating one.
func (t *Table) Lookup(b ttt.Board) (*Entry, bool) {
	e, ok := t.entries[b]
	return e, ok
}

// Range calls fn on every entry in increasing board order, until fn returns false.
func (t *Table) Range(fn func(e *Entry) bool) {
	keys := make([]ttt.Board, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		if !fn(t.entries[k]) {
			return
		}
	}
}

// SampleMove picks a cell with probability proportional to its weight (Uniform), or the
// cell at half the total weight (Midpoint).
func (t *Table) SampleMove(e *Entry) game.Single {
	sum := e.Sum()
	if sum == 0 {
		panic(fmt.Sprintf("Cannot sample a move. All weights are 0 on\n%s", e.board))
	}
	var point uint64
	switch t.conf.Sampler {
	case Uniform:
		point = 1 + uint64(t.urng.Int64n(int64(sum)))
	case Midpoint:
		point = sum / 2
		if point == 0 {
			point = 1
		}
	default:
		panic(fmt.Sprintf("Unknown sampler %v", t.conf.Sampler))
	}
	return e.pick(point)
}

// BestMove returns the cell with the greatest weight, the lowest cell winning ties.
func (t *Table) BestMove(e *Entry) game.Single { return e.Best() }

// Reinforce applies the outcome of a finished game to the moves that led to it.
//
// When a side wins, Cross's first move is adjusted by +Delta if Cross won and -Delta if
// Nought won, and the sign flips from one move to the next. A draw adds DrawCredit to every
// move. Every adjusted weight is clamped into [MinWeight, MaxWeight].
func (t *Table) Reinforce(traj Trajectory, winner game.Player) {
	var adj int64
	var alternate bool
	switch winner {
	case ttt.Cross:
		adj, alternate = int64(t.conf.Delta), true
	case ttt.Nought:
		adj, alternate = -int64(t.conf.Delta), true
	case game.Player(game.None):
		adj = int64(t.conf.DrawCredit)
	default:
		panic(fmt.Sprintf("Unknown winner %v", winner))
	}

	for _, m := range traj {
		t.adjust(m, adj)
		if alternate {
			adj = -adj
		}
	}
}

func (t *Table) adjust(m Move, adj int64) {
	if m.Entry.board.Get(m.Pos) != game.None {
		panic(fmt.Sprintf("Cannot reinforce occupied cell %d on\n%s", m.Pos, m.Entry.board))
	}
	w := int64(m.Entry.weights[m.Pos]) + adj
	switch {
	case w < int64(t.conf.MinWeight):
		w = int64(t.conf.MinWeight)
	case w > int64(t.conf.MaxWeight):
		w = int64(t.conf.MaxWeight)
	}
	m.Entry.weights[m.Pos] = uint32(w)
}
