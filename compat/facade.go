package compat

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sky-flux/mnemo"
)

// LegacyCard is the simplified card shape exposed by the legacy API.
// It omits the schema version, the memory factors, and every derived
// prediction field.
type LegacyCard struct {
	ID            uuid.UUID   `json:"id"`
	State         mnemo.State `json:"state"`
	Due           time.Time   `json:"due"`
	Stability     float64     `json:"stability"`
	Difficulty    float64     `json:"difficulty"`
	ElapsedDays   float64     `json:"elapsed_days"`
	ScheduledDays int         `json:"scheduled_days"`
	Reps          int         `json:"reps"`
	Lapses        int         `json:"lapses"`
	LastReview    *time.Time  `json:"last_review"`
}

// Facade wraps a mnemo.Scheduler behind the legacy card schema.
type Facade struct {
	sched *mnemo.Scheduler
}

// NewFacade wraps the given scheduler. A nil scheduler gets defaults.
func NewFacade(sched *mnemo.Scheduler) *Facade {
	if sched == nil {
		sched = mnemo.NewScheduler(mnemo.SchedulerConfig{})
	}
	return &Facade{sched: sched}
}

// Scheduler returns the wrapped scheduler.
func (f *Facade) Scheduler() *mnemo.Scheduler {
	return f.sched
}

// NewCard creates a new card in the legacy shape.
func (f *Facade) NewCard() LegacyCard {
	return FromCard(f.sched.CreateCard())
}

// Review processes a review through the wrapped scheduler and returns the
// updated card in the legacy shape plus the review log entry.
func (f *Facade) Review(card LegacyCard, rating mnemo.Rating, now time.Time) (LegacyCard, mnemo.ReviewLogEntry, error) {
	updated, entry, err := f.sched.ReviewCard(ToCard(card), rating, now)
	if err != nil {
		return LegacyCard{}, mnemo.ReviewLogEntry{}, err
	}
	return FromCard(updated), entry, nil
}

// FromCard converts a full card to the legacy shape, dropping the
// version, the memory factors, and the derived retrievability.
func FromCard(c mnemo.Card) LegacyCard {
	return LegacyCard{
		ID:            c.ID,
		State:         c.State,
		Due:           c.Due,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		LastReview:    c.LastReview,
	}
}

// ToCard converts a legacy card back to the full shape. The current
// schema version is assumed and the stripped fields take their neutral
// values; retrievability is recomputed from the card's elapsed time.
func ToCard(lc LegacyCard) mnemo.Card {
	c := mnemo.Card{
		ID:            lc.ID,
		Version:       mnemo.CardVersion,
		State:         lc.State,
		Due:           lc.Due,
		Stability:     lc.Stability,
		Difficulty:    lc.Difficulty,
		ElapsedDays:   lc.ElapsedDays,
		ScheduledDays: lc.ScheduledDays,
		Reps:          lc.Reps,
		Lapses:        lc.Lapses,
		LastReview:    lc.LastReview,
	}
	c.Retrievability = retention(lc.ElapsedDays, lc.Stability)
	return c
}

// PredictMemoryState returns the modeled recall probability futureDays
// from now: e^(-(elapsed + future)/S). It never mutates the card and
// decreases monotonically in futureDays for positive stability.
func (f *Facade) PredictMemoryState(card LegacyCard, futureDays float64) float64 {
	return retention(card.ElapsedDays+futureDays, card.Stability)
}

// Progress blends stability and repetition count into a coarse [0, 1]
// learning-progress heuristic. It is presentation glue, not part of the
// memory model: stability saturates at 100 days and reps at 10.
func (f *Facade) Progress(card LegacyCard) float64 {
	stabilityPart := math.Min(card.Stability/100, 1)
	repsPart := math.Min(float64(card.Reps)/10, 1)
	return 0.7*stabilityPart + 0.3*repsPart
}

func retention(elapsedDays, stability float64) float64 {
	if elapsedDays <= 0 || stability <= 0 {
		return 1
	}
	return math.Exp(-elapsedDays / stability)
}
