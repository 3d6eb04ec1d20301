package domain

import (
	"math/rand/v2"
	"time"
)

// Default bounds of the values inserted by a Scaler.
const (
	DefaultScaleMin = -100
	DefaultScaleMax = 10000
)

// Scaler grows a sequence argument to a requested size.
type Scaler interface {
	Scale(origin []int, count int) []int
}

type randomScaler struct {
	rng      *rand.Rand
	min, max int
}

// ScalerOption configures a Scaler.
type ScalerOption func(*randomScaler)

// WithValueRange sets the inclusive range of inserted values.
func WithValueRange(low, high int) ScalerOption {
	return func(s *randomScaler) {
		if low > high {
			low, high = high, low
		}

		s.min, s.max = low, high
	}
}

// WithSeed makes the scaler deterministic.
func WithSeed(seed uint64) ScalerOption {
	return func(s *randomScaler) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewScaler creates a Scaler inserting uniformly random values at uniformly
// random positions.
func NewScaler(options ...ScalerOption) Scaler {
	now := uint64(time.Now().UnixNano())
	s := &randomScaler{
		rng: rand.New(rand.NewPCG(now, now>>1)),
		min: DefaultScaleMin,
		max: DefaultScaleMax,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Scale returns a copy of origin with count random values inserted. Each
// position is drawn over the current length, so later insertions may land
// before earlier ones; origin itself is never modified.
func (s *randomScaler) Scale(origin []int, count int) []int {
	if count < 0 {
		count = 0
	}

	out := make([]int, len(origin), len(origin)+count)
	copy(out, origin)

	for range count {
		pos := s.rng.IntN(len(out) + 1)
		value := s.min + s.rng.IntN(s.max-s.min+1)

		out = append(out, 0)
		copy(out[pos+1:], out[pos:])
		out[pos] = value
	}

	return out
}
