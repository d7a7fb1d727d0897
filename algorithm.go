package mnemo

import "math"

// minStability is the floor applied to every computed stability.
const minStability = 0.01

// model holds a repaired weight vector plus the extension toggles and
// implements the pure memory-model functions.
type model struct {
	w         [NumWeights]float64
	shortTerm bool
	longTerm  bool
}

// newModel builds a model from repaired parameters.
func newModel(p Parameters) model {
	var m model
	copy(m.w[:], p.Weights)
	m.shortTerm = p.ShortTermMemory
	m.longTerm = p.LongTermStability
	return m
}

// retrievability computes R(t, S) = e^(-t/S).
// Returns 1 when t <= 0 or S <= 0 (nothing has decayed yet).
func (m *model) retrievability(elapsedDays, stability float64) float64 {
	if elapsedDays <= 0 || stability <= 0 {
		return 1
	}
	return math.Exp(-elapsedDays / stability)
}

// initialDifficulty returns D₀ = clamp(w[4] - 3*w[5], 1, 10).
// Unlike initial stability, D₀ does not depend on the first rating.
func (m *model) initialDifficulty() float64 {
	return clampD(m.w[4] - 3*m.w[5])
}

// nextDifficulty computes the updated difficulty after a review.
// D' = clamp(D - w[6]*(G - 3) + w[4]*(D₀ - D), 1, 10)
// The w[4] term mean-reverts toward the initial difficulty.
func (m *model) nextDifficulty(difficulty float64, r Rating) float64 {
	d0 := m.initialDifficulty()
	return clampD(difficulty - m.w[6]*(float64(r)-3) + m.w[4]*(d0-difficulty))
}

// initialStability returns S₀(G) = max(w[G-1], 0.1).
func (m *model) initialStability(r Rating) float64 {
	return math.Max(m.w[r-1], 0.1)
}

// forgetStability computes stability after forgetting (Again).
// S'_f = max(w[10] * S^w[12] * max(t, 1)^w[13] * e^(w[11]*(D - w[4])), 0.01)
func (m *model) forgetStability(stability, difficulty, elapsedDays float64) float64 {
	s := m.w[10] *
		math.Pow(stability, m.w[12]) *
		math.Pow(math.Max(elapsedDays, 1), m.w[13]) *
		math.Exp(m.w[11]*(difficulty-m.w[4]))
	return math.Max(s, minStability)
}

// recallStability computes stability after a successful recall
// (Hard/Good/Easy).
//
//	S'_r = S * e^(w[8]*(G - 3 + w[9]*(1 - R))) * hardPenalty * easyBonus
//
// When the short-term extension is on and t <= 3 days, the result is
// multiplied by 1 + w[17]*e^(-w[18]*t). When the long-term extension is
// on and t >= 30 days, it is multiplied by 1 + w[19]*ln(1 + w[20]*t/30).
func (m *model) recallStability(stability, elapsedDays float64, r Rating) float64 {
	retr := m.retrievability(elapsedDays, stability)

	hardPenalty := 1.0
	if r == Hard {
		hardPenalty = m.w[15]
	}
	easyBonus := 1.0
	if r == Easy {
		easyBonus = m.w[16]
	}

	s := stability *
		math.Exp(m.w[8]*(float64(r)-3+m.w[9]*(1-retr))) *
		hardPenalty * easyBonus

	if m.shortTerm && elapsedDays <= 3 {
		s *= 1 + m.w[17]*math.Exp(-m.w[18]*elapsedDays)
	}
	if m.longTerm && elapsedDays >= 30 {
		s *= 1 + m.w[19]*math.Log(1+m.w[20]*elapsedDays/30)
	}

	return math.Max(s, minStability)
}

// nextIntervalDays computes the next review interval in days.
// I(S) = round(max(1, round(S)) * |ln(r)/ln(0.9)|), clamped to [1, maxIvl].
func (m *model) nextIntervalDays(stability, requestRetention float64, maxIvl int) int {
	factor := math.Abs(math.Log(requestRetention) / math.Log(0.9))
	base := math.Max(1, math.Round(stability))
	ivl := int(math.Round(base * factor))
	if ivl < 1 {
		ivl = 1
	}
	if ivl > maxIvl {
		ivl = maxIvl
	}
	return ivl
}

// clampD clamps difficulty to [1, 10].
func clampD(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}

// clampFactor clamps a memory factor to [0.5, 2.0].
func clampFactor(f float64) float64 {
	return math.Min(math.Max(f, 0.5), 2.0)
}
