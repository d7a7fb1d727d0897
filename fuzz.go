package mnemo

import (
	"math"
	"math/rand"
)

// fuzzThreshold is the interval below which no fuzz is applied.
const fuzzThreshold = 2.5

// applyFuzz perturbs an interval by a uniform-random day delta in
// [-0.05*ivl, +0.05*ivl], capped at ±1 day and rounded. Intervals below
// 2.5 days are returned unchanged. The result never drops below 1 day.
func applyFuzz(scheduledDays int, rng *rand.Rand) int {
	ivl := float64(scheduledDays)
	if ivl < fuzzThreshold {
		return scheduledDays
	}

	span := math.Min(0.05*ivl, 1.0)
	delta := (rng.Float64()*2 - 1) * span

	fuzzed := scheduledDays + int(math.Round(delta))
	if fuzzed < 1 {
		fuzzed = 1
	}
	return fuzzed
}
