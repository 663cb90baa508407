package engine

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the raw generator behind a Selector. *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Uint32() uint32
}

// Selector draws unbiased integers from a Source
type Selector struct {
	src Source
}

// NewSelector wraps src
func NewSelector(src Source) *Selector {
	return &Selector{src: src}
}

// NewSeededSelector returns a Selector over a PCG generator. A zero seed
// seeds from the clock.
func NewSeededSelector(seed int64) *Selector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSelector(rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)))
}

// UniformInt returns an integer in [0, upper]. The source range is split into
// upper+1 equal buckets and draws landing in the leftover tail are rejected,
// so no value is favoured. upper <= 0 always yields 0.
func (s *Selector) UniformInt(upper int) int {
	if upper <= 0 {
		return 0
	}

	if uint64(upper) >= math.MaxUint32 {
		return s.uniformInt64(uint64(upper))
	}

	divisor := uint32(math.MaxUint32 / (uint64(upper) + 1))
	for {
		v := s.src.Uint32() / divisor
		if v <= uint32(upper) {
			return int(v)
		}
	}
}

// uniformInt64 is UniformInt for bounds past the 32-bit range. Each draw
// joins two source values, high word first.
func (s *Selector) uniformInt64(upper uint64) int {
	divisor := math.MaxUint64 / (upper + 1)
	for {
		v := (uint64(s.src.Uint32())<<32 | uint64(s.src.Uint32())) / divisor
		if v <= upper {
			return int(v)
		}
	}
}
