package mnemo

import (
	"time"

	"github.com/google/uuid"
)

// CardVersion is the card schema version this engine operates on.
// ReviewCard rejects cards carrying any other version.
const CardVersion = 1

// Card represents a learning item with its full scheduling state.
type Card struct {
	ID             uuid.UUID  `json:"id"`
	Version        int        `json:"version"`
	State          State      `json:"state"`
	Due            time.Time  `json:"due"`
	Stability      float64    `json:"stability"`  // days; 0 before first review.
	Difficulty     float64    `json:"difficulty"` // [1, 10].
	ElapsedDays    float64    `json:"elapsed_days"`
	ScheduledDays  int        `json:"scheduled_days"`
	Reps           int        `json:"reps"`
	Lapses         int        `json:"lapses"`
	LastReview     *time.Time `json:"last_review"` // nil before first review.
	Retrievability float64    `json:"retrievability"`

	// Memory factors, present only when the corresponding toggle is
	// enabled on the scheduler. Both live in [0.5, 2.0].
	ShortTermFactor *float64 `json:"short_term_factor,omitempty"`
	LongTermFactor  *float64 `json:"long_term_factor,omitempty"`
}

// clone returns a deep copy of the card. Pointer fields are copied by value.
func (c Card) clone() Card {
	out := c
	if c.LastReview != nil {
		v := *c.LastReview
		out.LastReview = &v
	}
	if c.ShortTermFactor != nil {
		v := *c.ShortTermFactor
		out.ShortTermFactor = &v
	}
	if c.LongTermFactor != nil {
		v := *c.LongTermFactor
		out.LongTermFactor = &v
	}
	return out
}

func (c *Card) setShortTermFactor(f float64) {
	c.ShortTermFactor = &f
}

func (c *Card) setLongTermFactor(f float64) {
	c.LongTermFactor = &f
}
