package personalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sky-flux/mnemo"
)

func TestAnalyzeLearningPatternEmptyHistory(t *testing.T) {
	e := NewEngine(EngineConfig{})
	got := e.AnalyzeLearningPattern()

	want := LearningPattern{
		OptimalStudyTime:     "19:00",
		AverageSessionLength: 20,
		PreferredDifficulty:  5,
		RetentionTrend:       TrendStable,
		ConsistencyScore:     0.5,
	}
	assert.Equal(t, want, got)
}

func TestAnalyzeLearningPatternDerived(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(20, 2, mnemo.Good, t0, time.Minute)) // all at 19:xx.

	got := e.AnalyzeLearningPattern()
	assert.Equal(t, "19:00", got.OptimalStudyTime)
	assert.Equal(t, TrendStable, got.RetentionTrend)
	assert.InDelta(t, 5.0, got.PreferredDifficulty, 1e-9)
	assert.InDelta(t, 1.0, got.ConsistencyScore, 1e-9)
	// 20 reviews a minute apart form one 19-minute session.
	assert.InDelta(t, 19.0, got.AverageSessionLength, 1e-9)
}

func TestAverageSessionSplitsOnGap(t *testing.T) {
	// Session one: three reviews across 20 minutes. Two hours idle.
	// Session two: two reviews across 10 minutes. Mean = 15 minutes.
	history := []mnemo.ReviewLogEntry{
		{Rating: mnemo.Good, ReviewDatetime: t0},
		{Rating: mnemo.Good, ReviewDatetime: t0.Add(10 * time.Minute)},
		{Rating: mnemo.Good, ReviewDatetime: t0.Add(20 * time.Minute)},
		{Rating: mnemo.Good, ReviewDatetime: t0.Add(2*time.Hour + 20*time.Minute)},
		{Rating: mnemo.Good, ReviewDatetime: t0.Add(2*time.Hour + 30*time.Minute)},
	}
	e := NewEngine(EngineConfig{})
	e.SetHistory(history)

	got := e.AnalyzeLearningPattern()
	assert.InDelta(t, 15.0, got.AverageSessionLength, 1e-9)
}

func TestAverageSessionSingleReview(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SetHistory(makeHistory(1, 0, mnemo.Good, t0, time.Minute))
	assert.InDelta(t, 0.0, e.AnalyzeLearningPattern().AverageSessionLength, 1e-9)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "07:00", formatHour(7))
	assert.Equal(t, "19:00", formatHour(19))
	assert.Equal(t, "00:00", formatHour(0))
}
