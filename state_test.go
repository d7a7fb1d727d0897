package mnemo

import (
	"encoding/json"
	"testing"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{New, "New"},
		{Learning, "Learning"},
		{Review, "Review"},
		{Relearning, "Relearning"},
		{State(0), "State(0)"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, s := range []State{New, Learning, Review, Relearning} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", s, err)
		}
		var got State
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if got != s {
			t.Errorf("round-trip %v → %v", s, got)
		}
	}
}

func TestStateMarshalInvalid(t *testing.T) {
	if _, err := json.Marshal(State(0)); err == nil {
		t.Error("Marshal(State(0)) should fail")
	}
}

func TestStateUnmarshalInvalid(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`"Sleeping"`), &s); err == nil {
		t.Error("Unmarshal of unknown state should fail")
	}
	if err := json.Unmarshal([]byte(`3`), &s); err == nil {
		t.Error("Unmarshal of numeric state should fail")
	}
}
