package mnemo

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRatingString(t *testing.T) {
	tests := []struct {
		rating Rating
		want   string
	}{
		{Again, "Again"},
		{Hard, "Hard"},
		{Good, "Good"},
		{Easy, "Easy"},
		{Rating(0), "Rating(0)"},
		{Rating(5), "Rating(5)"},
	}
	for _, tt := range tests {
		if got := tt.rating.String(); got != tt.want {
			t.Errorf("Rating(%d).String() = %q, want %q", int(tt.rating), got, tt.want)
		}
	}
}

func TestRatingIsValid(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		if !r.IsValid() {
			t.Errorf("%v.IsValid() = false, want true", r)
		}
	}
	for _, r := range []Rating{0, 5, -1} {
		if r.IsValid() {
			t.Errorf("Rating(%d).IsValid() = true, want false", int(r))
		}
	}
}

func TestRatingCorrect(t *testing.T) {
	tests := []struct {
		rating Rating
		want   bool
	}{
		{Again, false},
		{Hard, false},
		{Good, true},
		{Easy, true},
	}
	for _, tt := range tests {
		if got := tt.rating.Correct(); got != tt.want {
			t.Errorf("%v.Correct() = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestRatingJSONRoundTrip(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", r, err)
		}
		var got Rating
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != r {
			t.Errorf("round-trip %v → %v", r, got)
		}
	}
}

func TestRatingUnmarshalInvalid(t *testing.T) {
	var r Rating
	err := json.Unmarshal([]byte(`"Perfect"`), &r)
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("err = %v, want ErrInvalidRating", err)
	}
}
