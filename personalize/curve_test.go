package personalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/mnemo"
)

func reviewedCards(stability, difficulty float64, n int) []mnemo.Card {
	cards := make([]mnemo.Card, n)
	for i := range cards {
		cards[i] = mnemo.Card{
			Version:    mnemo.CardVersion,
			State:      mnemo.Review,
			Stability:  stability,
			Difficulty: difficulty,
		}
	}
	return cards
}

func TestMemoryCurveZeroDays(t *testing.T) {
	e := NewEngine(EngineConfig{})
	assert.Nil(t, e.MemoryCurve(nil, 0, 80))
	assert.Nil(t, e.MemoryCurve(nil, -3, 80))
}

func TestMemoryCurveSyntheticFallbackNoHistory(t *testing.T) {
	e := NewEngine(EngineConfig{})
	points := e.MemoryCurve(reviewedCards(10, 5, 3), 7, 80)
	require.Len(t, points, 7)

	// Day 1 of the fixed synthetic curve: 85·e^(-1/12) and 88·e^(-1/14).
	assert.InDelta(t, 85*math.Exp(-1.0/12), points[0].FSRSPredicted, 1e-9)
	assert.InDelta(t, 88*math.Exp(-1.0/14), points[0].ActualPredicted, 1e-9)
	assert.Equal(t, 1, points[0].Day)
}

func TestMemoryCurveSyntheticFallbackNoStabilities(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(60, 2, mnemo.Good, t0, time.Minute))

	// Cards that were never reviewed carry no stability.
	points := e.MemoryCurve(reviewedCards(0, 5, 3), 5, 80)
	require.Len(t, points, 5)
	assert.InDelta(t, 85*math.Exp(-1.0/12), points[0].FSRSPredicted, 1e-9)
}

func TestMemoryCurveFSRSPrediction(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(60, 2, mnemo.Good, t0, time.Minute))

	points := e.MemoryCurve(reviewedCards(20, 5, 4), 10, 80)
	require.Len(t, points, 10)
	for i, p := range points {
		day := i + 1
		assert.Equal(t, day, p.Day)
		assert.InDeltaf(t, 100*math.Exp(-float64(day)/20), p.FSRSPredicted, 1e-9,
			"generic prediction at day %d", day)
	}
}

func TestMemoryCurvePersonalizedBelowGenericOnWeakSessions(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(60, 2, mnemo.Again, t0, time.Minute))

	// Weak session accuracy shrinks the personalized stability, so the
	// personalized curve decays faster than the generic one.
	points := e.MemoryCurve(reviewedCards(20, 5, 4), 10, 40)
	for _, p := range points {
		assert.LessOrEqual(t, p.ActualPredicted, p.FSRSPredicted)
	}
}

func TestMemoryCurvePerformanceFloor(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(60, 2, mnemo.Good, t0, time.Minute))

	// Session accuracy floors at 0.4: a 0% and a 40% session predict the
	// same personalized curve.
	zero := e.MemoryCurve(reviewedCards(20, 5, 4), 5, 0)
	forty := e.MemoryCurve(reviewedCards(20, 5, 4), 5, 40)
	for i := range zero {
		assert.InDelta(t, forty[i].ActualPredicted, zero[i].ActualPredicted, 1e-9)
	}
}

func TestMemoryCurveSingleReviewHistory(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(1, 2, mnemo.Good, t0, time.Minute))

	// A one-entry history flows through the personal factor; every point
	// must stay numeric and inside [0, 100].
	points := e.MemoryCurve(reviewedCards(20, 5, 2), 3, 80)
	require.Len(t, points, 3)
	for _, p := range points {
		for _, v := range []float64{p.FSRSPredicted, p.ActualPredicted, p.ConfidenceLow, p.ConfidenceHigh} {
			require.Falsef(t, math.IsNaN(v), "NaN at day %d", p.Day)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestMemoryCurveConfidenceInterval(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(60, 2, mnemo.Good, t0, time.Minute))

	points := e.MemoryCurve(reviewedCards(20, 5, 4), 40, 80)
	for i, p := range points {
		day := i + 1
		margin := math.Min(20, 5+0.5*float64(day))
		assert.LessOrEqual(t, p.ConfidenceLow, p.ActualPredicted)
		assert.GreaterOrEqual(t, p.ConfidenceHigh, p.ActualPredicted)
		assert.LessOrEqual(t, p.ConfidenceHigh-p.ActualPredicted, margin+1e-9)
		// Everything stays inside [0, 100].
		for _, v := range []float64{p.FSRSPredicted, p.ActualPredicted, p.ConfidenceLow, p.ConfidenceHigh} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
	// The margin widens with the horizon until the 20-point cap.
	early := points[0].ConfidenceHigh - points[0].ConfidenceLow
	late := points[35].ConfidenceHigh - points[35].ConfidenceLow
	assert.Greater(t, late, early)
}
