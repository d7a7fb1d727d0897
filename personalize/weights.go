package personalize

import "github.com/sky-flux/mnemo"

// Nudge magnitudes for the rule-based weight adjustment. All stay within
// the ±0.01–0.1 band so a personalized vector never drifts far from the
// base model.
const (
	intervalNudge   = 0.05 // w[0], w[1]
	difficultyNudge = 0.1  // w[6]
	shortTermNudge  = 0.05 // w[17]
	shortDecayNudge = 0.01 // w[18]
	longTermNudge   = 0.02 // w[19]
	longScaleNudge  = 0.01 // w[20]
)

// adjustWeights derives the personalized weight vector from the cached
// history. Below MinHistoryForAdjustment reviews the base weights pass
// through unchanged. Every adjusted weight is re-clamped to its bounds.
func (e *Engine) adjustWeights() []float64 {
	w := append([]float64(nil), e.base.Weights...)
	if len(e.history) < MinHistoryForAdjustment {
		return w
	}

	// Interval preference: users reviewing at short spacings get lower
	// initial stabilities, long spacings higher.
	switch e.profile.IntervalPreference {
	case PreferShorter:
		w[0] -= intervalNudge
		w[1] -= intervalNudge
	case PreferLonger:
		w[0] += intervalNudge
		w[1] += intervalNudge
	}

	// Difficulty sensitivity from recent accuracy: a struggling user gets
	// stronger rating-driven difficulty movement, a cruising user weaker.
	switch acc := e.profile.RecentAccuracy; {
	case acc > 0.9:
		w[6] -= difficultyNudge
	case acc < 0.7:
		w[6] += difficultyNudge
	}

	// Short-term sensitivity from accuracy at elapsed <= 3 days.
	if shortTerm := filterElapsed(e.history, 0, 3); len(shortTerm) >= minBucketSamples {
		switch acc := accuracy(shortTerm); {
		case acc > 0.85:
			w[17] += shortTermNudge
			w[18] -= shortDecayNudge
		case acc < 0.65:
			w[17] -= shortTermNudge
			w[18] += shortDecayNudge
		}
	}

	// Long-term sensitivity from accuracy at elapsed >= 30 days.
	if longTerm := filterElapsed(e.history, 30, maxElapsed); len(longTerm) >= minBucketSamples {
		switch acc := accuracy(longTerm); {
		case acc > 0.85:
			w[19] += longTermNudge
			w[20] += longScaleNudge
		case acc < 0.65:
			w[19] -= longTermNudge
			w[20] -= longScaleNudge
		}
	}

	for i := range w {
		if w[i] < mnemo.WeightLowerBounds[i] {
			w[i] = mnemo.WeightLowerBounds[i]
		}
		if w[i] > mnemo.WeightUpperBounds[i] {
			w[i] = mnemo.WeightUpperBounds[i]
		}
	}
	return w
}
