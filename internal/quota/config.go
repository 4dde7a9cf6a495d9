package quota

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// BufferStrategy decides which chapters absorb the rounding remainder left
// after the floor step of weight allocation.
type BufferStrategy string

const (
	// BufferRandom picks the remainder chapters uniformly at random
	// without replacement.
	BufferRandom BufferStrategy = "random"

	// BufferLargestRemainder gives the remainder to the chapters with the
	// largest fractional share, ties by weight then chapter order.
	BufferLargestRemainder BufferStrategy = "largest-remainder"
)

// Config holds the tunable allocation parameters for one section.
type Config struct {
	// MinPerChapter is the floor every chapter receives in each division.
	MinPerChapter int `json:"min_per_chapter" yaml:"min_per_chapter"`

	// MediumSlope skews high-weight chapters toward medium questions.
	MediumSlope float64 `json:"medium_slope" yaml:"medium_slope"`

	// HardSlope skews high-weight chapters toward hard questions.
	HardSlope float64 `json:"hard_slope" yaml:"hard_slope"`

	// Buffer selects the remainder strategy. Empty means BufferRandom.
	Buffer BufferStrategy `json:"buffer,omitempty" yaml:"buffer,omitempty"`

	// Seed pins the random source when set. Nil means unseeded; zero is a
	// valid seed.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultConfig returns the recommended allocation parameters.
func DefaultConfig() Config {
	return Config{
		MinPerChapter: 1,
		MediumSlope:   0.1,
		HardSlope:     0.1,
		Buffer:        BufferRandom,
	}
}

// Validate checks the config for values the allocator cannot work with.
func (c Config) Validate() error {
	if c.MinPerChapter < 0 {
		return fmt.Errorf("%w: min per chapter must be >= 0, got %d", ErrInvalidConfiguration, c.MinPerChapter)
	}
	if !isFinite(c.MediumSlope) || !isFinite(c.HardSlope) {
		return fmt.Errorf("%w: slopes must be finite numbers", ErrInvalidConfiguration)
	}
	switch c.Buffer {
	case "", BufferRandom, BufferLargestRemainder:
	default:
		return fmt.Errorf("%w: unknown buffer strategy %q", ErrInvalidConfiguration, c.Buffer)
	}
	return nil
}

// SetSeed pins the random source to seed.
func (c *Config) SetSeed(seed uint64) {
	c.Seed = &seed
}

// Seeded returns the seed and whether one is set.
func (c Config) Seeded() (uint64, bool) {
	if c.Seed == nil {
		return 0, false
	}
	return *c.Seed, true
}

// Source returns a seeded random source, or nil when no seed is set.
func (c Config) Source() rand.Source {
	seed, ok := c.Seeded()
	if !ok {
		return nil
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func (c Config) buffer() BufferStrategy {
	if c.Buffer == "" {
		return BufferRandom
	}
	return c.Buffer
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
