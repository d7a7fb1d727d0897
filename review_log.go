package mnemo

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLogEntry is an immutable record of one review. All card fields
// are snapshots taken before the review was applied.
type ReviewLogEntry struct {
	LogID          uuid.UUID `json:"log_id"`
	CardID         uuid.UUID `json:"card_id"`
	Rating         Rating    `json:"rating"`
	State          State     `json:"state"`      // pre-review.
	Stability      float64   `json:"stability"`  // pre-review.
	Difficulty     float64   `json:"difficulty"` // pre-review.
	Due            time.Time `json:"due"`        // pre-review.
	ElapsedDays    float64   `json:"elapsed_days"`
	ScheduledDays  int       `json:"scheduled_days"` // interval just assigned.
	ReviewDatetime time.Time `json:"review_datetime"`
	ReviewDuration *int      `json:"review_duration,omitempty"` // milliseconds, optional.
}
