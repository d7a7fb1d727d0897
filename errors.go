package mnemo

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for the mnemo package.
// Use errors.Is to check: errors.Is(err, mnemo.ErrInvalidRating)
var (
	ErrInvalidRating       = errors.New("mnemo: invalid rating")
	ErrVersionMismatch     = errors.New("mnemo: unsupported card version")
	ErrInvalidParameters   = errors.New("mnemo: parameters out of bounds")
	ErrCardIDMismatch      = errors.New("mnemo: card ID mismatch in review log")
	ErrInsufficientHistory = errors.New("mnemo: insufficient review history")
)

// ComputationError wraps an unexpected failure inside a review computation
// together with the triggering card, rating, and review time.
type ComputationError struct {
	CardID uuid.UUID
	Rating Rating
	Time   time.Time
	Err    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("mnemo: review computation failed for card %s (rating %s at %s): %v",
		e.CardID, e.Rating, e.Time.Format(time.RFC3339), e.Err)
}

// Unwrap returns the wrapped cause.
func (e *ComputationError) Unwrap() error {
	return e.Err
}
