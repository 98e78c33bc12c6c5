package policy

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	X = game.Black
	O = game.White
)

func testConf(s Sampler) Config {
	conf := DefaultConfig()
	conf.Sampler = s
	conf.Seed = 1337
	return conf
}

// randomBoards plays uniformly random games and returns every non-terminal board on the way.
func randomBoards(r *rand.Rand, games int) []ttt.Board {
	var retVal []ttt.Board
	for i := 0; i < games; i++ {
		b := ttt.Empty()
		for !b.IsTerminal() {
			retVal = append(retVal, b)
			empty := emptyCells(b)
			b = b.Set(empty[r.Intn(len(empty))], game.Colour(b.ToMove()))
		}
	}
	return retVal
}

func emptyCells(b ttt.Board) []game.Single {
	var retVal []game.Single
	for i := 0; i < ttt.Size; i++ {
		if b.Get(game.Single(i)) == game.None {
			retVal = append(retVal, game.Single(i))
		}
	}
	return retVal
}

// randomGame plays a game by sampling from the table and returns the trajectory and winner.
func randomGame(tbl *Table) (Trajectory, game.Player) {
	var traj Trajectory
	b := ttt.Empty()
	player := ttt.Cross
	for !b.IsTerminal() {
		e := tbl.EntryFor(b)
		pos := tbl.SampleMove(e)
		traj = append(traj, Move{Entry: e, Pos: pos})
		b = b.Set(pos, game.Colour(player))
		player = player.Opponent()
	}
	_, winner := b.Ended()
	return traj, winner
}

func TestConfigs(t *testing.T) {
	assert.True(t, DefaultConfig().IsValid())
	assert.True(t, Classic().IsValid())
	assert.True(t, Bulk().IsValid())

	bad := Classic()
	bad.MinWeight = 0
	assert.False(t, bad.IsValid(), "a zero floor would let an empty cell become unselectable")

	bad = Classic()
	bad.InitialWeight = bad.MaxWeight + 1
	assert.False(t, bad.IsValid())

	bad = Classic()
	bad.DrawCredit = bad.Delta
	assert.False(t, bad.IsValid(), "a draw must be worth less than a win")

	bad = Classic()
	bad.Sampler = MAXSAMPLER
	assert.False(t, bad.IsValid())

	assert.Panics(t, func() { NewTable(bad) })
}

func TestParseSampler(t *testing.T) {
	for s := Uniform; s < MAXSAMPLER; s++ {
		got, err := ParseSampler(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSampler("gaussian")
	assert.Error(t, err)
}

func TestEntryForMasksOccupiedCells(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	r := rand.New(rand.NewSource(1337))
	for _, b := range randomBoards(r, 500) {
		e := tbl.EntryFor(b)
		assert.Equal(t, b, e.Board())
		for i := 0; i < ttt.Size; i++ {
			pos := game.Single(i)
			if b.Get(pos) != game.None {
				if e.Weight(pos) != 0 {
					t.Fatalf("Occupied cell %d has weight %d on\n%s", pos, e.Weight(pos), b)
				}
			} else if e.Weight(pos) == 0 {
				t.Fatalf("Empty cell %d has no weight on\n%s", pos, b)
			}
		}
	}
}

func TestEntryForIsGetOrInsert(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	b := ttt.MustParse("X.. .O. ...")
	_, ok := tbl.Lookup(b)
	assert.False(t, ok)

	e := tbl.EntryFor(b)
	assert.Equal(t, 1, tbl.Len())
	assert.Same(t, e, tbl.EntryFor(b))
	assert.Equal(t, 1, tbl.Len())

	found, ok := tbl.Lookup(b)
	assert.True(t, ok)
	assert.Same(t, e, found)
	assert.Equal(t, [ttt.Size]uint32{0, 500, 500, 500, 0, 500, 500, 500, 500}, e.Weights())
}

func TestSelectionValidity(t *testing.T) {
	for s := Uniform; s < MAXSAMPLER; s++ {
		t.Run(s.String(), func(t *testing.T) {
			tbl := NewTable(testConf(s))
			// skew the weights away from their initial values
			for i := 0; i < 2000; i++ {
				traj, winner := randomGame(tbl)
				tbl.Reinforce(traj, winner)
			}
			r := rand.New(rand.NewSource(42))
			for _, b := range randomBoards(r, 300) {
				e := tbl.EntryFor(b)
				for i := 0; i < 20; i++ {
					pos := tbl.SampleMove(e)
					if e.Weight(pos) == 0 || b.Get(pos) != game.None {
						t.Fatalf("SampleMove returned occupied cell %d on\n%s", pos, b)
					}
				}
				pos := tbl.BestMove(e)
				if e.Weight(pos) == 0 || b.Get(pos) != game.None {
					t.Fatalf("BestMove returned occupied cell %d on\n%s", pos, b)
				}
			}
		})
	}
}

func TestSampleMoveDistribution(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	e := tbl.EntryFor(ttt.MustParse("XOX OXO ..."))
	e.weights[6], e.weights[7], e.weights[8] = 1, 3, 4

	counts := make(map[game.Single]int)
	const n = 80000
	for i := 0; i < n; i++ {
		counts[tbl.SampleMove(e)]++
	}
	assert.Len(t, counts, 3)
	assert.InDelta(t, 0.125, float64(counts[6])/n, 0.01)
	assert.InDelta(t, 0.375, float64(counts[7])/n, 0.01)
	assert.InDelta(t, 0.5, float64(counts[8])/n, 0.01)
}

func TestSampleMoveMidpoint(t *testing.T) {
	tbl := NewTable(testConf(Midpoint))
	e := tbl.EntryFor(ttt.Empty())
	// sum 4500, point 2250: cumulative 500, 1000, ..., 2500 at cell 4
	for i := 0; i < 10; i++ {
		assert.Equal(t, game.Single(4), tbl.SampleMove(e))
	}

	e = tbl.EntryFor(ttt.MustParse("XOX OXO XO."))
	e.weights[8] = 1
	assert.Equal(t, game.Single(8), tbl.SampleMove(e), "a total weight of 1 must still pick the only cell")
}

func TestSampleMoveAllZero(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	full := tbl.EntryFor(ttt.MustParse("XOX XOO OXX"))
	assert.Panics(t, func() { tbl.SampleMove(full) })
	assert.Panics(t, func() { tbl.BestMove(full) })
}

func TestBestMove(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	e := tbl.EntryFor(ttt.Empty())
	assert.Equal(t, game.Single(0), tbl.BestMove(e), "ties go to the lowest cell")

	e.weights[3] = 700
	e.weights[7] = 700
	assert.Equal(t, game.Single(3), tbl.BestMove(e))

	e.weights[7] = 701
	assert.Equal(t, game.Single(7), tbl.BestMove(e))

	o := tbl.EntryFor(ttt.MustParse("X.. ... ..."))
	assert.Equal(t, game.Single(1), tbl.BestMove(o), "occupied cells never win a tie")
}

func TestReinforce(t *testing.T) {
	conf := testConf(Uniform)
	b0 := ttt.Empty()
	b1 := b0.Set(4, game.Black)
	b2 := b1.Set(0, game.White)
	b3 := b2.Set(8, game.Black)

	play := func(tbl *Table) Trajectory {
		return Trajectory{
			{tbl.EntryFor(b0), 4},
			{tbl.EntryFor(b1), 0},
			{tbl.EntryFor(b2), 8},
			{tbl.EntryFor(b3), 2},
		}
	}
	weights := func(traj Trajectory) []uint32 {
		retVal := make([]uint32, len(traj))
		for i, m := range traj {
			retVal[i] = m.Entry.Weight(m.Pos)
		}
		return retVal
	}

	tbl := NewTable(conf)
	traj := play(tbl)
	tbl.Reinforce(traj, ttt.Cross)
	assert.Equal(t, []uint32{510, 490, 510, 490}, weights(traj))

	tbl = NewTable(conf)
	traj = play(tbl)
	tbl.Reinforce(traj, ttt.Nought)
	assert.Equal(t, []uint32{490, 510, 490, 510}, weights(traj))

	tbl = NewTable(conf)
	traj = play(tbl)
	tbl.Reinforce(traj, game.Player(game.None))
	assert.Equal(t, []uint32{501, 501, 501, 501}, weights(traj))

	// untouched cells keep their initial weight
	assert.Equal(t, uint32(500), traj[0].Entry.Weight(0))
	assert.Equal(t, uint32(0), traj[1].Entry.Weight(4))

	assert.Panics(t, func() { tbl.Reinforce(traj, game.Player(3)) })
	assert.Panics(t, func() {
		tbl.Reinforce(Trajectory{{tbl.EntryFor(b1), 4}}, ttt.Cross)
	}, "reinforcing an occupied cell is a bug")
}

func TestReinforceOrdering(t *testing.T) {
	// a win is worth more than a draw, which is worth more than a loss
	for _, conf := range []Config{DefaultConfig(), Classic(), Bulk()} {
		conf.InitialWeight = conf.MaxWeight / 2
		outcome := func(winner game.Player) uint32 {
			tbl := NewTable(conf)
			e := tbl.EntryFor(ttt.Empty())
			tbl.Reinforce(Trajectory{{e, 4}}, winner)
			return e.Weight(4)
		}
		win, draw, loss := outcome(ttt.Cross), outcome(game.Player(game.None)), outcome(ttt.Nought)
		assert.True(t, win > draw && draw >= conf.InitialWeight && draw > loss, "%+v: win %d draw %d loss %d", conf, win, draw, loss)
	}
}

func TestWeightClamp(t *testing.T) {
	conf := testConf(Uniform)
	conf.InitialWeight = 30
	conf.MaxWeight = 60
	conf.DrawCredit = 5
	tbl := NewTable(conf)
	r := rand.New(rand.NewSource(7))
	outcomes := []game.Player{ttt.Cross, ttt.Nought, game.Player(game.None)}
	for i := 0; i < 5000; i++ {
		traj, _ := randomGame(tbl)
		tbl.Reinforce(traj, outcomes[r.Intn(len(outcomes))])
	}
	require.True(t, tbl.Len() > 100)
	tbl.Range(func(e *Entry) bool {
		for i, w := range e.Weights() {
			pos := game.Single(i)
			if e.Board().Get(pos) != game.None {
				assert.Zero(t, w)
				continue
			}
			if w < conf.MinWeight || w > conf.MaxWeight {
				t.Fatalf("Weight %d at %d out of [%d, %d] on\n%s", w, pos, conf.MinWeight, conf.MaxWeight, e.Board())
			}
		}
		return true
	})
}

func TestRangeOrder(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	for _, s := range []string{"X........", ".........", "...O.X..."} {
		tbl.EntryFor(ttt.MustParse(s))
	}
	var keys []ttt.Board
	tbl.Range(func(e *Entry) bool {
		keys = append(keys, e.Board())
		return len(keys) < 2
	})
	assert.Equal(t, []ttt.Board{ttt.Empty(), ttt.MustParse("X........")}, keys)
}

func TestProbabilitiesAndEntropy(t *testing.T) {
	tbl := NewTable(testConf(Uniform))
	e := tbl.EntryFor(ttt.Empty())
	for _, p := range e.Probabilities() {
		assert.InDelta(t, 1.0/9, p, 1e-6)
	}
	assert.InDelta(t, math32.Log(9), e.Entropy(), 1e-5)

	e = tbl.EntryFor(ttt.MustParse("XOX OXO XO."))
	probs := e.Probabilities()
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0}, probs[:8])
	assert.InDelta(t, 1, probs[8], 1e-6)
	assert.InDelta(t, 0, e.Entropy(), 1e-6)
}
