package personalize

import (
	"fmt"
	"time"
)

// sessionGap is the idle time after which a review belongs to a new
// study session.
const sessionGap = 30 * time.Minute

// LearningPattern summarizes when and how effectively the user studies.
type LearningPattern struct {
	OptimalStudyTime     string         `json:"optimal_study_time"`     // "HH:00".
	AverageSessionLength float64        `json:"average_session_length"` // minutes.
	PreferredDifficulty  float64        `json:"preferred_difficulty"`
	RetentionTrend       RetentionTrend `json:"retention_trend"`
	ConsistencyScore     float64        `json:"consistency_score"`
}

// AnalyzeLearningPattern derives the learning pattern from the cached
// history. With no history it returns the fixed defaults: 19:00,
// 20-minute sessions, difficulty 5, stable trend, consistency 0.5.
func (e *Engine) AnalyzeLearningPattern() LearningPattern {
	if len(e.history) == 0 {
		return LearningPattern{
			OptimalStudyTime:     "19:00",
			AverageSessionLength: 20,
			PreferredDifficulty:  5,
			RetentionTrend:       TrendStable,
			ConsistencyScore:     0.5,
		}
	}

	return LearningPattern{
		OptimalStudyTime:     e.profile.OptimalStudyTime,
		AverageSessionLength: e.averageSessionMinutes(),
		PreferredDifficulty:  e.profile.PreferredDifficulty,
		RetentionTrend:       e.profile.RetentionTrend,
		ConsistencyScore:     e.profile.ConsistencyScore,
	}
}

// averageSessionMinutes splits the sorted history into contiguous bursts
// (a gap above sessionGap starts a new one) and returns the mean burst
// duration in minutes.
func (e *Engine) averageSessionMinutes() float64 {
	if len(e.history) == 0 {
		return 0
	}

	var total float64
	sessions := 0

	start := e.history[0].ReviewDatetime
	prev := start
	for _, r := range e.history[1:] {
		if r.ReviewDatetime.Sub(prev) > sessionGap {
			total += prev.Sub(start).Minutes()
			sessions++
			start = r.ReviewDatetime
		}
		prev = r.ReviewDatetime
	}
	total += prev.Sub(start).Minutes()
	sessions++

	return total / float64(sessions)
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
