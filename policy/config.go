package policy

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sampler decides how the penetration point of a stochastic move is chosen.
type Sampler int

const (
	// Uniform draws the penetration point uniformly from [1, sum] on every call.
	Uniform Sampler = iota
	// Midpoint fixes the penetration point at sum/2. Play is deterministic for a given table.
	Midpoint
	MAXSAMPLER
)

func (s Sampler) String() string {
	switch s {
	case Uniform:
		return "uniform"
	case Midpoint:
		return "midpoint"
	}
	return fmt.Sprintf("Sampler(%d)", int(s))
}

// ParseSampler is the inverse of String.
func ParseSampler(s string) (Sampler, error) {
	for i := Uniform; i < MAXSAMPLER; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return MAXSAMPLER, errors.Errorf("Unknown sampler %q", s)
}

// Config configures the weights of a Table and how moves are sampled from them.
type Config struct {
	InitialWeight uint32 // weight of every empty cell of a new entry
	MinWeight     uint32 // weights never drop below this after an update
	MaxWeight     uint32 // weights never rise above this after an update
	Delta         uint32 // magnitude of a win/loss adjustment
	DrawCredit    uint32 // added to every move of a drawn game

	Sampler Sampler
	Seed    int64 // seed of the Uniform sampler. 0 seeds from the clock
}

// DefaultConfig is Classic with a small credit for draws, which is what makes greedy
// self-play settle on drawn lines.
func DefaultConfig() Config {
	conf := Classic()
	conf.DrawCredit = 1
	return conf
}

// Classic is the slow regime. Draws earn nothing and moves are sampled uniformly.
func Classic() Config {
	return Config{
		InitialWeight: 500,
		MinWeight:     1,
		MaxWeight:     10000,
		Delta:         10,
		Sampler:       Uniform,
	}
}

// Bulk is the regime tuned for millions of games. Weights start at the ceiling and moves
// are picked at the midpoint of the total weight.
func Bulk() Config {
	return Config{
		InitialWeight: 100000,
		MinWeight:     1,
		MaxWeight:     100000,
		Delta:         10,
		DrawCredit:    1,
		Sampler:       Midpoint,
	}
}

// IsValid checks the weight bounds and that a win is worth more than a draw, which is worth
// more than a loss.
func (c Config) IsValid() bool {
	return c.MinWeight >= 1 &&
		c.MinWeight <= c.InitialWeight &&
		c.InitialWeight <= c.MaxWeight &&
		c.Delta > 0 &&
		c.DrawCredit < c.Delta &&
		c.Sampler >= Uniform && c.Sampler < MAXSAMPLER
}
