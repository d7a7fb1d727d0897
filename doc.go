// Package mnemo implements an FSRS v6.1.1 spaced repetition scheduling
// engine with a personalization layer.
//
// mnemo provides a pure-Go Scheduler that maps (card state, rating) to a
// new scheduling state under a 21-weight memory model, a compat facade
// (in mnemo/compat) exposing a simplified legacy card schema, and a
// personalization engine (in mnemo/personalize) that adapts the generic
// model to an individual's review history.
//
// Basic usage:
//
//	s := mnemo.NewScheduler(mnemo.SchedulerConfig{})
//
//	card := s.CreateCard()
//	card, entry, err := s.ReviewCard(card, mnemo.Good, time.Now())
package mnemo
