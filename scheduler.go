package mnemo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// SchedulerConfig configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type SchedulerConfig struct {
	Parameters *Parameters  // nil → DefaultParameters; repaired silently either way.
	Rand       *rand.Rand   // fuzz source; nil → time-seeded. Inject for reproducibility.
	Logger     *slog.Logger // nil → slog.Default(). Observability only.
}

// Scheduler schedules card reviews using the FSRS v6.1.1 algorithm.
//
// A Scheduler is not safe for concurrent use; callers sharing one
// instance across goroutines must synchronize externally.
type Scheduler struct {
	params   Parameters
	model    model
	rng      *rand.Rand
	logger   *slog.Logger
	counters rollingCounters
}

// NewScheduler creates a Scheduler from the given config. Malformed
// parameter values are silently repaired to their defaults rather than
// rejected; each repair is logged at debug level.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	params := DefaultParameters()
	if cfg.Parameters != nil {
		params = cfg.Parameters.clone()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, r := range params.Repair() {
		logger.Debug("mnemo: repaired parameter", "repair", r.String())
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Scheduler{
		params: params,
		model:  newModel(params),
		rng:    rng,
		logger: logger,
	}
}

// CreateCard creates a new card in the New state, due immediately.
// Stability starts at 0 and difficulty at the model's initial difficulty.
func (s *Scheduler) CreateCard() Card {
	now := time.Now()
	c := Card{
		ID:             uuid.New(),
		Version:        CardVersion,
		State:          New,
		Due:            now,
		Difficulty:     s.model.initialDifficulty(),
		Retrievability: 1,
	}
	if s.params.ShortTermMemory {
		c.setShortTermFactor(1.0)
	}
	if s.params.LongTermStability {
		c.setLongTermFactor(1.0)
	}
	return c
}

// ReviewCard processes a review of the card at the given time. It returns
// the updated card and a log entry recording the pre-review state. The
// input card is not mutated.
//
// Elapsed days are computed as the absolute day delta between the last
// review and now, so an out-of-order timestamp is folded rather than
// rejected.
func (s *Scheduler) ReviewCard(card Card, rating Rating, now time.Time) (Card, ReviewLogEntry, error) {
	start := time.Now()

	if card.Version != CardVersion {
		return Card{}, ReviewLogEntry{}, fmt.Errorf("%w: got %d, want %d",
			ErrVersionMismatch, card.Version, CardVersion)
	}
	if !rating.IsValid() {
		return Card{}, ReviewLogEntry{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if !card.State.isValid() {
		return Card{}, ReviewLogEntry{}, fmt.Errorf("mnemo: invalid card state: %d", int(card.State))
	}

	c := card.clone()

	var elapsedDays float64
	if c.LastReview != nil {
		elapsedDays = math.Abs(now.Sub(*c.LastReview).Hours() / 24.0)
	}
	c.ElapsedDays = elapsedDays

	entry := ReviewLogEntry{
		LogID:          uuid.New(),
		CardID:         card.ID,
		Rating:         rating,
		State:          card.State,
		Stability:      card.Stability,
		Difficulty:     card.Difficulty,
		Due:            card.Due,
		ElapsedDays:    elapsedDays,
		ReviewDatetime: now,
	}

	transitionTable[card.State][rating](s, &c, elapsedDays)

	if math.IsNaN(c.Stability) || math.IsInf(c.Stability, 0) ||
		math.IsNaN(c.Difficulty) || math.IsInf(c.Difficulty, 0) {
		return Card{}, ReviewLogEntry{}, &ComputationError{
			CardID: card.ID,
			Rating: rating,
			Time:   now,
			Err:    fmt.Errorf("non-finite memory state: stability=%v difficulty=%v", c.Stability, c.Difficulty),
		}
	}

	c.Retrievability = s.model.retrievability(elapsedDays, c.Stability)
	s.nudgeFactors(&c, rating)

	if s.params.EnableFuzz && c.ScheduledDays > 0 {
		c.ScheduledDays = applyFuzz(c.ScheduledDays, s.rng)
	}

	c.Due = now.Add(time.Duration(c.ScheduledDays) * 24 * time.Hour)
	c.LastReview = &now
	c.Reps++
	entry.ScheduledDays = c.ScheduledDays

	s.counters.record(rating.Correct(), time.Since(start))
	s.logger.Debug("mnemo: review",
		"card", c.ID, "rating", rating.String(), "state", c.State.String(),
		"stability", c.Stability, "scheduled_days", c.ScheduledDays)

	return c, entry, nil
}

// transition applies one (state, rating) cell of the state machine to the
// card: new stability, new state, lapse count, and raw interval.
type transition func(s *Scheduler, c *Card, elapsedDays float64)

// transitionTable is the explicit (state × rating) dispatch table.
// Indexed [State][Rating]; row and column zero are never used.
var transitionTable = [Relearning + 1][Easy + 1]transition{
	New: {
		Again: (*Scheduler).lapseFromNew,
		Hard:  (*Scheduler).hardFromNew,
		Good:  (*Scheduler).goodFromNew,
		Easy:  (*Scheduler).easyFromNew,
	},
	Learning: {
		Again: (*Scheduler).lapse,
		Hard:  (*Scheduler).hardRecall,
		Good:  (*Scheduler).goodRecall,
		Easy:  (*Scheduler).easyRecall,
	},
	Review: {
		Again: (*Scheduler).lapse,
		Hard:  (*Scheduler).hardRecall,
		Good:  (*Scheduler).goodRecall,
		Easy:  (*Scheduler).easyRecall,
	},
	Relearning: {
		Again: (*Scheduler).lapse,
		Hard:  (*Scheduler).hardRecall,
		Good:  (*Scheduler).goodRecall,
		Easy:  (*Scheduler).easyRecall,
	},
}

// lapseFromNew handles Again on a never-reviewed card: it stays in the
// learning phase rather than entering Relearning.
func (s *Scheduler) lapseFromNew(c *Card, elapsedDays float64) {
	s.applyLapse(c, elapsedDays, Learning)
}

// lapse handles Again on any previously seen card.
func (s *Scheduler) lapse(c *Card, elapsedDays float64) {
	s.applyLapse(c, elapsedDays, Relearning)
}

func (s *Scheduler) applyLapse(c *Card, elapsedDays float64, next State) {
	c.Lapses++
	stability := s.model.forgetStability(c.Stability, c.Difficulty, elapsedDays)
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Again)
	c.Stability = stability
	c.State = next
	c.ScheduledDays = 0
}

// hardFromNew graduates a new card into Learning with the Hard initial
// stability.
func (s *Scheduler) hardFromNew(c *Card, _ float64) {
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Hard)
	c.Stability = s.model.initialStability(Hard)
	c.State = Learning
	c.ScheduledDays = s.nextInterval(c.Stability)
}

// hardRecall applies the w[15] stability penalty plus a second 0.85
// interval-level penalty stacked on top of it.
func (s *Scheduler) hardRecall(c *Card, elapsedDays float64) {
	stability := s.model.recallStability(c.Stability, elapsedDays, Hard)
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Hard)
	c.Stability = stability
	c.State = Review
	c.ScheduledDays = s.nextInterval(stability * 0.85)
}

func (s *Scheduler) goodFromNew(c *Card, _ float64) {
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Good)
	c.Stability = s.model.initialStability(Good)
	c.State = Review
	c.ScheduledDays = s.nextInterval(c.Stability)
}

func (s *Scheduler) goodRecall(c *Card, elapsedDays float64) {
	stability := s.model.recallStability(c.Stability, elapsedDays, Good)
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Good)
	c.Stability = stability
	c.State = Review
	c.ScheduledDays = s.nextInterval(stability)
}

func (s *Scheduler) easyFromNew(c *Card, _ float64) {
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Easy)
	c.Stability = s.model.initialStability(Easy)
	c.State = Review
	c.ScheduledDays = s.nextInterval(c.Stability)
}

// easyRecall applies the 1.15 interval-level bonus stacked on the w[16]
// stability bonus.
func (s *Scheduler) easyRecall(c *Card, elapsedDays float64) {
	stability := s.model.recallStability(c.Stability, elapsedDays, Easy)
	c.Difficulty = s.model.nextDifficulty(c.Difficulty, Easy)
	c.Stability = stability
	c.State = Review
	c.ScheduledDays = s.nextInterval(stability * 1.15)
}

func (s *Scheduler) nextInterval(stability float64) int {
	return s.model.nextIntervalDays(stability, s.params.RequestRetention, s.params.MaximumInterval)
}

// nudgeFactors adjusts the optional short/long-term memory factors by
// ±w[17]/±w[19] depending on whether the recall succeeded.
func (s *Scheduler) nudgeFactors(c *Card, rating Rating) {
	sign := -1.0
	if rating.Correct() {
		sign = 1.0
	}
	if s.params.ShortTermMemory {
		f := 1.0
		if c.ShortTermFactor != nil {
			f = *c.ShortTermFactor
		}
		c.setShortTermFactor(clampFactor(f + sign*s.model.w[17]))
	}
	if s.params.LongTermStability {
		f := 1.0
		if c.LongTermFactor != nil {
			f = *c.LongTermFactor
		}
		c.setLongTermFactor(clampFactor(f + sign*s.model.w[19]))
	}
}

// PreviewCard returns the result of reviewing the card with each possible
// rating. The card itself is not changed.
func (s *Scheduler) PreviewCard(card Card, now time.Time) (map[Rating]Card, error) {
	result := make(map[Rating]Card, 4)
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		c, _, err := s.ReviewCard(card, r, now)
		if err != nil {
			return nil, err
		}
		result[r] = c
	}
	return result, nil
}

// RescheduleCard replays the given log entries to rebuild the card's
// scheduling state. Returns ErrCardIDMismatch if any entry belongs to a
// different card.
func (s *Scheduler) RescheduleCard(card Card, entries []ReviewLogEntry) (Card, error) {
	c := card.clone()
	for _, e := range entries {
		if e.CardID != c.ID {
			return Card{}, fmt.Errorf("%w: card %s, log %s", ErrCardIDMismatch, c.ID, e.CardID)
		}
		var err error
		c, _, err = s.ReviewCard(c, e.Rating, e.ReviewDatetime)
		if err != nil {
			return Card{}, err
		}
	}
	return c, nil
}

// Retrievability returns the modeled recall probability for the card at
// the given time. A card that has never been reviewed returns 1.
func (s *Scheduler) Retrievability(card Card, now time.Time) float64 {
	if card.LastReview == nil {
		return 1
	}
	elapsed := math.Abs(now.Sub(*card.LastReview).Hours() / 24.0)
	return s.model.retrievability(elapsed, card.Stability)
}

// Parameters returns a copy of the current parameter set. Successive
// calls without an intervening update return identical values.
func (s *Scheduler) Parameters() Parameters {
	return s.params.clone()
}

// UpdateParameters merges the update into the current parameters and
// re-repairs the result. Invalid values are silently corrected.
func (s *Scheduler) UpdateParameters(u ParametersUpdate) {
	s.params = s.params.Apply(u)
	for _, r := range s.params.Repair() {
		s.logger.Debug("mnemo: repaired parameter", "repair", r.String())
	}
	s.model = newModel(s.params)
}

// Metrics returns an observability snapshot of this scheduler instance.
func (s *Scheduler) Metrics() PerformanceMetrics {
	return s.counters.snapshot()
}

// Version identifies the algorithm implemented by this scheduler.
func (s *Scheduler) Version() VersionInfo {
	return VersionInfo{
		Version:        algorithmVersion,
		AlgorithmName:  algorithmName,
		ParameterCount: NumWeights,
	}
}

// schedulerJSON is the serialized form of a Scheduler. The random source
// and logger are runtime concerns and are not serialized.
type schedulerJSON struct {
	Parameters Parameters `json:"parameters"`
}

// MarshalJSON implements json.Marshaler.
func (s *Scheduler) MarshalJSON() ([]byte, error) {
	return json.Marshal(schedulerJSON{Parameters: s.params})
}

// UnmarshalJSON implements json.Unmarshaler. It rebuilds the internal
// model from the serialized parameters.
func (s *Scheduler) UnmarshalJSON(data []byte) error {
	var j schedulerJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	rebuilt := NewScheduler(SchedulerConfig{Parameters: &j.Parameters})
	*s = *rebuilt
	return nil
}
