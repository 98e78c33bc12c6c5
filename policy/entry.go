package policy

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"gorgonia.org/vecf32"
)

// Entry holds the move weights of one board. The weight of an occupied cell is 0 and stays 0.
type Entry struct {
	board   ttt.Board
	weights [ttt.Size]uint32
}

func newEntry(b ttt.Board, initial uint32) *Entry {
	e := &Entry{board: b}
	for i := range e.weights {
		if b.Get(game.Single(i)) == game.None {
			e.weights[i] = initial
		}
	}
	return e
}

// Board is the key of the entry.
func (e *Entry) Board() ttt.Board { return e.board }

// Weights returns a copy of the weights.
func (e *Entry) Weights() [ttt.Size]uint32 { return e.weights }

// Weight returns the weight of a single cell.
func (e *Entry) Weight(pos game.Single) uint32 { return e.weights[pos] }

// Sum returns the total weight.
func (e *Entry) Sum() (retVal uint64) {
	for _, w := range e.weights {
		retVal += uint64(w)
	}
	return
}

// Best returns the cell with the greatest weight. Ties go to the lowest cell.
func (e *Entry) Best() game.Single {
	var best game.Single
	for i := range e.weights {
		if e.weights[i] > e.weights[best] {
			best = game.Single(i)
		}
	}
	if e.weights[best] == 0 {
		panic(fmt.Sprintf("No selectable cell on\n%s", e.board))
	}
	return best
}

// pick walks the cells, accumulating weight, and returns the first cell at which the
// accumulated weight reaches point.
func (e *Entry) pick(point uint64) game.Single {
	var accum uint64
	for i, w := range e.weights {
		accum += uint64(w)
		if accum >= point {
			return game.Single(i)
		}
	}
	panic(fmt.Sprintf("Penetration point %d beyond total weight %d", point, accum))
}

// Probabilities returns the weights normalised into a distribution.
func (e *Entry) Probabilities() []float32 {
	retVal := make([]float32, len(e.weights))
	for i, w := range e.weights {
		retVal[i] = float32(w)
	}
	sum := vecf32.Sum(retVal)
	if sum == 0 {
		return retVal
	}
	vecf32.Scale(retVal, 1/sum)
	return retVal
}

// Entropy is the entropy, in nats, of the move distribution. A fresh entry on an empty board
// has the maximum, log(9). It falls towards 0 as the entry settles on a single move.
func (e *Entry) Entropy() float32 {
	var retVal float32
	for _, p := range e.Probabilities() {
		if p > 0 {
			retVal -= p * math32.Log(p)
		}
	}
	return retVal
}

func (e *Entry) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{Board: %d Weights: %v}", e.board, e.weights)
}
