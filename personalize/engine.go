package personalize

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sky-flux/mnemo"
)

// MinHistoryForAdjustment is the review count below which weight
// adjustment stays disabled.
const MinHistoryForAdjustment = 50

// minBucketSamples is the minimum number of reviews a time bucket
// (short-term, long-term) must hold before it influences weights.
const minBucketSamples = 10

// IntervalPreference buckets the user's average review spacing.
type IntervalPreference string

const (
	PreferShorter IntervalPreference = "shorter"
	PreferLonger  IntervalPreference = "longer"
	PreferNormal  IntervalPreference = "normal"
)

// RetentionTrend describes how accuracy moved across the history.
type RetentionTrend string

const (
	TrendImproving RetentionTrend = "improving"
	TrendStable    RetentionTrend = "stable"
	TrendDeclining RetentionTrend = "declining"
)

// Profile is the recomputable performance profile derived from history.
type Profile struct {
	RecentAccuracy       float64            `json:"recent_accuracy"` // last-100-review accuracy, [0, 1].
	IntervalPreference   IntervalPreference `json:"interval_preference"`
	ShortTermPerformance float64            `json:"short_term_performance"` // accuracy at elapsed <= 3 days.
	LongTermStability    float64            `json:"long_term_stability"`    // accuracy at elapsed >= 30 days.
	ConsistencyScore     float64            `json:"consistency_score"`      // [0, 1], from hour-of-day variance.
	OptimalStudyTime     string             `json:"optimal_study_time"`     // "HH:00", mode hour of day.
	PreferredDifficulty  float64            `json:"preferred_difficulty"`   // mean pre-review difficulty.
	RetentionTrend       RetentionTrend     `json:"retention_trend"`
}

// defaultProfile is the profile reported before any history is ingested.
func defaultProfile() Profile {
	return Profile{
		IntervalPreference:  PreferNormal,
		ConsistencyScore:    0.5,
		OptimalStudyTime:    "19:00",
		PreferredDifficulty: 5,
		RetentionTrend:      TrendStable,
	}
}

// EngineConfig configures an Engine. Zero values produce defaults.
type EngineConfig struct {
	Base   *mnemo.Parameters // base parameter set to adjust; nil → defaults.
	Logger *slog.Logger      // nil → slog.Default(). Observability only.
}

// Engine derives personalization data from a review history.
//
// An Engine caches the last-ingested history and its derived state; it is
// not safe for concurrent use.
type Engine struct {
	base    mnemo.Parameters
	logger  *slog.Logger
	history []mnemo.ReviewLogEntry // sorted by review time.
	profile Profile
	weights []float64
}

// NewEngine creates an Engine with an empty history. Until SetHistory is
// called, the profile holds its defaults and the weights pass through.
func NewEngine(cfg EngineConfig) *Engine {
	base := mnemo.DefaultParameters()
	if cfg.Base != nil {
		base = cfg.Base.Apply(mnemo.ParametersUpdate{})
	}
	base.Repair()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		base:    base,
		logger:  logger,
		profile: defaultProfile(),
	}
	e.weights = append([]float64(nil), base.Weights...)
	return e
}

// SetHistory replaces the cached history and recomputes every derived
// structure in one O(n) pass. The input slice is copied, then sorted by
// review time.
func (e *Engine) SetHistory(entries []mnemo.ReviewLogEntry) {
	e.history = append([]mnemo.ReviewLogEntry(nil), entries...)
	sort.Slice(e.history, func(i, j int) bool {
		return e.history[i].ReviewDatetime.Before(e.history[j].ReviewDatetime)
	})

	e.profile = e.computeProfile()
	e.weights = e.adjustWeights()

	e.logger.Debug("personalize: history ingested",
		"reviews", len(e.history),
		"recent_accuracy", e.profile.RecentAccuracy,
		"trend", string(e.profile.RetentionTrend))
}

// HistorySize returns the number of cached review entries.
func (e *Engine) HistorySize() int {
	return len(e.history)
}

// Profile returns the current performance profile.
func (e *Engine) Profile() Profile {
	return e.profile
}

// AdjustedWeights returns a copy of the personalized weight vector.
// With fewer than MinHistoryForAdjustment reviews it equals the base
// weights.
func (e *Engine) AdjustedWeights() []float64 {
	return append([]float64(nil), e.weights...)
}

// AdjustedParameters returns the base parameter set with the
// personalized weight vector applied, ready to feed a scheduler.
func (e *Engine) AdjustedParameters() mnemo.Parameters {
	p := e.base.Apply(mnemo.ParametersUpdate{Weights: e.weights})
	p.Repair()
	return p
}

// computeProfile derives the full profile from the sorted history.
func (e *Engine) computeProfile() Profile {
	if len(e.history) == 0 {
		return defaultProfile()
	}

	p := Profile{
		RecentAccuracy:       accuracy(tail(e.history, 100)),
		ShortTermPerformance: accuracy(filterElapsed(e.history, 0, 3)),
		LongTermStability:    accuracy(filterElapsed(e.history, 30, maxElapsed)),
		ConsistencyScore:     consistencyScore(e.history),
		OptimalStudyTime:     modeHour(e.history),
		PreferredDifficulty:  meanDifficulty(e.history),
		RetentionTrend:       retentionTrend(e.history),
	}

	switch mean := meanElapsed(e.history); {
	case mean < 5:
		p.IntervalPreference = PreferShorter
	case mean > 15:
		p.IntervalPreference = PreferLonger
	default:
		p.IntervalPreference = PreferNormal
	}

	return p
}

// maxElapsed is an open upper bound for elapsed-day filters.
const maxElapsed = 1e9

// accuracy returns the Good-or-better share of the entries, 0 when empty.
func accuracy(entries []mnemo.ReviewLogEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	correct := 0
	for _, r := range entries {
		if r.Rating.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(entries))
}

// tail returns the last n entries.
func tail(entries []mnemo.ReviewLogEntry, n int) []mnemo.ReviewLogEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// filterElapsed returns entries with ElapsedDays in [lo, hi].
func filterElapsed(entries []mnemo.ReviewLogEntry, lo, hi float64) []mnemo.ReviewLogEntry {
	var out []mnemo.ReviewLogEntry
	for _, r := range entries {
		if r.ElapsedDays >= lo && r.ElapsedDays <= hi {
			out = append(out, r)
		}
	}
	return out
}

// meanElapsed averages ElapsedDays over entries with a real gap
// (first reviews carry 0 and would skew the spacing estimate).
func meanElapsed(entries []mnemo.ReviewLogEntry) float64 {
	var gaps []float64
	for _, r := range entries {
		if r.ElapsedDays > 0 {
			gaps = append(gaps, r.ElapsedDays)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	return stat.Mean(gaps, nil)
}

func meanDifficulty(entries []mnemo.ReviewLogEntry) float64 {
	vals := make([]float64, len(entries))
	for i, r := range entries {
		vals[i] = r.Difficulty
	}
	return stat.Mean(vals, nil)
}

// consistencyScore maps hour-of-day variance onto [0, 1]: a user who
// always studies at the same hour scores 1. A single review carries no
// spread, so it scores 1 (sample variance needs two points).
func consistencyScore(entries []mnemo.ReviewLogEntry) float64 {
	if len(entries) < 2 {
		return 1
	}
	hours := make([]float64, len(entries))
	for i, r := range entries {
		hours[i] = float64(r.ReviewDatetime.Hour())
	}
	score := 1 - stat.Variance(hours, nil)/24
	if score < 0 {
		return 0
	}
	return score
}

// modeHour returns the most frequent review hour as "HH:00".
func modeHour(entries []mnemo.ReviewLogEntry) string {
	var counts [24]int
	for _, r := range entries {
		counts[r.ReviewDatetime.Hour()]++
	}
	best := 0
	for h, n := range counts {
		if n > counts[best] {
			best = h
		}
	}
	return formatHour(best)
}

// retentionTrend compares second-half accuracy against first-half
// accuracy with a ±5% threshold.
func retentionTrend(entries []mnemo.ReviewLogEntry) RetentionTrend {
	if len(entries) < 2 {
		return TrendStable
	}
	mid := len(entries) / 2
	first := accuracy(entries[:mid])
	second := accuracy(entries[mid:])
	switch {
	case second-first > 0.05:
		return TrendImproving
	case first-second > 0.05:
		return TrendDeclining
	default:
		return TrendStable
	}
}
