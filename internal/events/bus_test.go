package events

import (
	"context"
	"errors"
	"puzzlestats/internal/models"
	"puzzlestats/internal/services"
	"puzzlestats/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIngestor struct {
	mu     sync.Mutex
	events []models.ChatEvent
	fail   map[string]error
	panics map[string]bool
}

func (r *recordingIngestor) Ingest(_ context.Context, event models.ChatEvent) (services.Result, error) {
	if r.panics[event.MessageID] {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail[event.MessageID]; err != nil {
		return services.Result{}, err
	}
	r.events = append(r.events, event)
	return services.Result{Status: services.StatusRecorded}, nil
}

func (r *recordingIngestor) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.events))
	for _, e := range r.events {
		ids = append(ids, e.MessageID)
	}
	return ids
}

func startBus(t *testing.T, ingest services.Ingestor) (*Bus, *testutil.MockLogger) {
	t.Helper()
	logger := &testutil.MockLogger{}
	bus, err := NewBus(ingest, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = bus.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = bus.Close()
	})

	select {
	case <-bus.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("event router did not start")
	}
	return bus, logger
}

func TestBus_DeliversInOrder(t *testing.T) {
	ingest := &recordingIngestor{}
	bus, _ := startBus(t, ingest)

	for _, id := range []string{"1", "2", "3"} {
		uid, err := bus.Publish(context.Background(), models.ChatEvent{MessageID: id, AuthorID: "u1", Text: "Wordle 1200 3/6"})
		require.NoError(t, err)
		assert.NotEmpty(t, uid)
	}

	assert.Eventually(t, func() bool { return len(ingest.ids()) == 3 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"1", "2", "3"}, ingest.ids())
	assert.Equal(t, "Wordle 1200 3/6", ingest.events[0].Text)
}

func TestBus_FailuresAreDropped(t *testing.T) {
	ingest := &recordingIngestor{
		fail:   map[string]error{"bad": errors.New("nope")},
		panics: map[string]bool{"panic": true},
	}
	bus, logger := startBus(t, ingest)

	for _, id := range []string{"bad", "panic", "ok"} {
		_, err := bus.Publish(context.Background(), models.ChatEvent{MessageID: id})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool { return len(ingest.ids()) == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ok"}, ingest.ids())
	assert.True(t, logger.Has("error", "Dropping event"))
}

func TestLoggerAdapter_Fields(t *testing.T) {
	logger := &testutil.MockLogger{}
	adapter := NewLoggerAdapter(logger).With(watermill.LogFields{"topic": "chat.messages"})

	adapter.Info("subscribed", watermill.LogFields{"handler": "ingest"})
	adapter.Error("failed", errors.New("x"), nil)

	assert.True(t, logger.Has("info", "subscribed handler=ingest topic=chat.messages"))
	assert.True(t, logger.Has("error", "failed: x topic=chat.messages"))
}
