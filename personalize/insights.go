package personalize

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/sky-flux/mnemo"
)

// Insight is one actionable observation about the user's studying.
type Insight struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"` // "accuracy", "consistency", "difficulty", "pacing", "general".
	Priority   int       `json:"priority"` // higher sorts first.
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
}

// slowReviewMillis is the mean review duration above which the pacing
// insight fires. Only real recorded durations count; histories without
// duration capture never trigger it.
const slowReviewMillis = 15000

// Insights runs the independent rule checks against the cached history
// and the current cards and returns the matching insights sorted by
// priority, highest first. With no history it returns two generic
// starter insights.
//
// sessionAccuracy is a percentage in [0, 100].
func (e *Engine) Insights(cards []mnemo.Card, sessionAccuracy float64) []Insight {
	if len(e.history) == 0 {
		return []Insight{
			{
				ID:         uuid.New(),
				Category:   "general",
				Priority:   1,
				Message:    "Not enough review history to personalize yet.",
				Suggestion: "Keep reviewing daily; insights unlock as your history grows.",
			},
			{
				ID:         uuid.New(),
				Category:   "general",
				Priority:   1,
				Message:    "Short, regular sessions beat occasional long ones.",
				Suggestion: "Aim for one session at roughly the same time each day.",
			},
		}
	}

	var insights []Insight

	switch {
	case sessionAccuracy < 70:
		insights = append(insights, Insight{
			ID:       uuid.New(),
			Category: "accuracy",
			Priority: 5,
			Message:  fmt.Sprintf("Session accuracy is %.0f%%, below the 70%% comfort zone.", sessionAccuracy),
			Suggestion: "Reduce the number of new cards and let reviews catch up " +
				"before adding more material.",
		})
	case sessionAccuracy > 90:
		insights = append(insights, Insight{
			ID:         uuid.New(),
			Category:   "accuracy",
			Priority:   3,
			Message:    fmt.Sprintf("Session accuracy is %.0f%%; the material may be too easy.", sessionAccuracy),
			Suggestion: "Raise the requested retention or introduce more new cards.",
		})
	}

	if e.profile.ConsistencyScore < 0.6 {
		insights = append(insights, Insight{
			ID:         uuid.New(),
			Category:   "consistency",
			Priority:   4,
			Message:    "Your review times are scattered across the day.",
			Suggestion: fmt.Sprintf("Your strongest hour is %s; try anchoring sessions there.", e.profile.OptimalStudyTime),
		})
	}

	if d := meanCardDifficulty(cards); d > 7 {
		insights = append(insights, Insight{
			ID:         uuid.New(),
			Category:   "difficulty",
			Priority:   4,
			Message:    fmt.Sprintf("Average card difficulty is %.1f out of 10.", d),
			Suggestion: "Split dense cards into smaller facts; difficulty drifts down as recalls succeed.",
		})
	}

	if ms, ok := meanReviewDuration(e.history); ok && ms > slowReviewMillis {
		insights = append(insights, Insight{
			ID:         uuid.New(),
			Category:   "pacing",
			Priority:   2,
			Message:    fmt.Sprintf("Reviews take %.1fs on average.", ms/1000),
			Suggestion: "Answer from first instinct and rate honestly; long deliberation weakens the spacing signal.",
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})
	return insights
}

func meanCardDifficulty(cards []mnemo.Card) float64 {
	if len(cards) == 0 {
		return 0
	}
	vals := make([]float64, len(cards))
	for i, c := range cards {
		vals[i] = c.Difficulty
	}
	return stat.Mean(vals, nil)
}

// meanReviewDuration averages the recorded review durations in
// milliseconds. Returns ok=false when fewer than minBucketSamples
// entries carry a duration.
func meanReviewDuration(entries []mnemo.ReviewLogEntry) (float64, bool) {
	var vals []float64
	for _, r := range entries {
		if r.ReviewDuration != nil {
			vals = append(vals, float64(*r.ReviewDuration))
		}
	}
	if len(vals) < minBucketSamples {
		return 0, false
	}
	return stat.Mean(vals, nil), true
}
