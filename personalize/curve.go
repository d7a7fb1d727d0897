package personalize

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sky-flux/mnemo"
)

// CurvePoint is one day of a predicted retention curve. All retention
// values are percentages in [0, 100].
type CurvePoint struct {
	Day             int     `json:"day"`
	FSRSPredicted   float64 `json:"fsrs_predicted"`   // generic model, unmodified weights.
	ActualPredicted float64 `json:"actual_predicted"` // personalized prediction.
	ConfidenceLow   float64 `json:"confidence_low"`
	ConfidenceHigh  float64 `json:"confidence_high"`
}

// Synthetic fallback curve constants, used when no usable history or
// card stabilities exist.
const (
	syntheticFSRSRetention   = 85.0
	syntheticFSRSStability   = 12.0
	syntheticActualRetention = 88.0
	syntheticActualStability = 14.0
)

// MemoryCurve predicts retention for days 1..days over the given cards.
// The FSRS curve uses the mean card stability as-is; the personalized
// curve scales it by a session-performance multiplier (floored at 0.4),
// a difficulty factor, and a personal factor derived from recent
// accuracy and schedule consistency. The confidence interval widens with
// the horizon, capped at ±20 points.
//
// sessionAccuracy is a percentage in [0, 100].
func (e *Engine) MemoryCurve(cards []mnemo.Card, days int, sessionAccuracy float64) []CurvePoint {
	if days <= 0 {
		return nil
	}

	var stabilities, difficulties []float64
	for _, c := range cards {
		if c.Stability > 0 {
			stabilities = append(stabilities, c.Stability)
			difficulties = append(difficulties, c.Difficulty)
		}
	}

	if len(e.history) == 0 || len(stabilities) == 0 {
		return e.syntheticCurve(days)
	}

	meanStability := stat.Mean(stabilities, nil)

	performance := math.Max(sessionAccuracy/100, 0.4)
	difficulty := difficultyFactor(stat.Mean(difficulties, nil))
	personal := e.personalFactor()
	adjusted := meanStability * performance * difficulty * personal

	points := make([]CurvePoint, days)
	for day := 1; day <= days; day++ {
		fsrs := clampPct(100 * math.Exp(-float64(day)/meanStability))
		actual := clampPct(100 * math.Exp(-float64(day)/adjusted))
		ci := confidenceMargin(day)
		points[day-1] = CurvePoint{
			Day:             day,
			FSRSPredicted:   fsrs,
			ActualPredicted: actual,
			ConfidenceLow:   clampPct(actual - ci),
			ConfidenceHigh:  clampPct(actual + ci),
		}
	}
	return points
}

// syntheticCurve is the fixed fallback used without usable data.
func (e *Engine) syntheticCurve(days int) []CurvePoint {
	points := make([]CurvePoint, days)
	for day := 1; day <= days; day++ {
		actual := clampPct(syntheticActualRetention * math.Exp(-float64(day)/syntheticActualStability))
		ci := confidenceMargin(day)
		points[day-1] = CurvePoint{
			Day:             day,
			FSRSPredicted:   clampPct(syntheticFSRSRetention * math.Exp(-float64(day)/syntheticFSRSStability)),
			ActualPredicted: actual,
			ConfidenceLow:   clampPct(actual - ci),
			ConfidenceHigh:  clampPct(actual + ci),
		}
	}
	return points
}

// difficultyFactor maps mean difficulty onto a stability multiplier:
// 1.0 at the neutral difficulty 5, down to 0.75 at 10, up to 1.2 at 1.
func difficultyFactor(meanDifficulty float64) float64 {
	return 1 + (5-meanDifficulty)/20
}

// personalFactor blends recent accuracy with schedule consistency into a
// stability multiplier centered near 1.
func (e *Engine) personalFactor() float64 {
	return 0.8 + 0.2*e.profile.RecentAccuracy + 0.1*(e.profile.ConsistencyScore-0.5)
}

// confidenceMargin widens with the prediction horizon: ±(5 + 0.5·day),
// capped at ±20.
func confidenceMargin(day int) float64 {
	return math.Min(20, 5+0.5*float64(day))
}

func clampPct(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}
