package mnemo

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReviewLogEntryJSONRoundTrip(t *testing.T) {
	s := noFuzzScheduler()
	card := s.CreateCard()
	_, entry, err := s.ReviewCard(card, Good, t0)
	if err != nil {
		t.Fatalf("ReviewCard: %v", err)
	}
	dur := 4200
	entry.ReviewDuration = &dur

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var restored ReviewLogEntry
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.CardID != entry.CardID || restored.LogID != entry.LogID {
		t.Error("identity fields lost in round-trip")
	}
	if restored.Rating != Good || restored.State != New {
		t.Errorf("Rating/State = %v/%v, want Good/New", restored.Rating, restored.State)
	}
	if restored.ReviewDuration == nil || *restored.ReviewDuration != 4200 {
		t.Errorf("ReviewDuration = %v, want 4200", restored.ReviewDuration)
	}
	if !restored.ReviewDatetime.Equal(t0) {
		t.Errorf("ReviewDatetime = %v, want %v", restored.ReviewDatetime, t0)
	}
}

func TestReviewLogEntryUniqueLogIDs(t *testing.T) {
	s := noFuzzScheduler()
	card := s.CreateCard()
	c, e1, _ := s.ReviewCard(card, Good, t0)
	_, e2, _ := s.ReviewCard(c, Good, t0.Add(48*time.Hour))
	if e1.LogID == e2.LogID {
		t.Error("consecutive reviews share a LogID")
	}
}

func TestReviewLogEntryOmitsNilDuration(t *testing.T) {
	s := noFuzzScheduler()
	_, entry, _ := s.ReviewCard(s.CreateCard(), Good, t0)
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := m["review_duration"]; ok {
		t.Error("review_duration serialized despite being nil")
	}
}
