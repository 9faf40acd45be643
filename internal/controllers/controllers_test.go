package controllers

import (
	"context"
	"errors"
	"puzzlestats/internal/backfill"
	"puzzlestats/internal/models"
	"puzzlestats/internal/services"
	"puzzlestats/internal/structures"
	"sync"
	"time"
)

// --- local mocks (scoped to controller tests) ---

var testNow = time.Date(2025, 7, 16, 18, 0, 0, 0, time.UTC)

type mockPublisher struct {
	mu     sync.Mutex
	events []models.ChatEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event models.ChatEvent) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.events = append(m.events, event)
	return "evt-" + event.MessageID, nil
}

type mockSubmitter struct {
	subs []models.TimedSubmission
}

func (m *mockSubmitter) SubmitTimed(_ context.Context, sub models.TimedSubmission) (services.TimedResult, error) {
	if sub.Time == "bad" {
		return services.TimedResult{}, models.NewValidationError("time", "use seconds or mm:ss")
	}
	m.subs = append(m.subs, sub)
	return services.TimedResult{UserID: sub.UserID, Date: "2025-07-16", Seconds: 65}, nil
}

type mockRunner struct {
	running bool
	err     error
	reqs    []backfill.Request
}

func (m *mockRunner) Start(_ context.Context, req backfill.Request) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.reqs = append(m.reqs, req)
	return "run-1", nil
}

func (m *mockRunner) Running() bool { return m.running }

var errBoom = errors.New("boom")

func seededRecords() services.RecordServiceInterface {
	rs := services.NewRecordService()
	rs.AddGuess("u1", "alice", 1200, models.GuessRecord{Guesses: 3})
	rs.AddGuess("u1", "alice", 1201, models.GuessRecord{Guesses: 4})
	rs.AddGuess("u2", "bob", 1201, models.GuessRecord{Guesses: 2})
	rs.AddGrouping("u2", "bob", 400, models.GroupingRecord{Mistakes: 0, Score: 99, PurpleFirst: true})
	rs.PutTimed("u1", "alice", "2025-07-16", 65)
	return rs
}

func newStatsService(rs services.RecordServiceInterface) services.StatsServiceInterface {
	conf := &structures.Config{Game: structures.GameConfig{WindowSize: 14, PageSize: 10}}
	return services.NewStatsService(conf, rs, func() time.Time { return testNow })
}

func newEmptyRecords() services.RecordServiceInterface {
	return services.NewRecordService()
}
