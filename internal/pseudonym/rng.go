package pseudonym

import (
	"math"
	"math/rand/v2"
	"unicode/utf16"
)

// LCG constants. Changing them changes every seeded output.
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// RNG produces the next pseudo-random value on each call.
// An RNG is not safe for concurrent use; each pseudonymization owns one.
type RNG func() float64

// NewSeededRNG returns a deterministic generator yielding values in [0.5, 1.5).
// The seed is folded into 32 bits over its UTF-16 code units (h = h*31 + c),
// then advanced by a linear-congruential step per call.
func NewSeededRNG(seed string) RNG {
	var state uint32
	for _, c := range utf16.Encode([]rune(seed)) {
		state = state<<5 - state + uint32(c)
	}

	return func() float64 {
		state = state*lcgMultiplier + lcgIncrement
		return float64(state)/lcgModulus + 0.5
	}
}

// NewUnseededRNG returns a non-reproducible generator yielding values in [0, 1).
func NewUnseededRNG() RNG {
	return rand.Float64
}

func newRNG(seed string) RNG {
	if seed == "" {
		return NewUnseededRNG()
	}
	return NewSeededRNG(seed)
}

// ShiftAmount draws a month offset as floor(rng() * rangeMonths * 2) - rangeMonths.
func ShiftAmount(rng RNG, rangeMonths int) int {
	return int(math.Floor(rng()*float64(rangeMonths)*2)) - rangeMonths
}
