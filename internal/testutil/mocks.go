package testutil

import (
	"context"
	"errors"
	"fmt"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Has reports whether an entry of the given level contains substr.
func (m *MockLogger) Has(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return append([]byte(nil), val...), nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return append([]byte(nil), val...), nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts
// results by "game/outcome".
type MockMetrics struct {
	mu        sync.Mutex
	Results   map[string]int
	Backfills []time.Duration
	Persists  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Results: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string)                            {}
func (m *MockMetrics) IncCacheMisses(_ string)                          {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) IncResults(game, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results[game+"/"+outcome]++
}

func (m *MockMetrics) ObserveBackfillDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Backfills = append(m.Backfills, d)
}

func (m *MockMetrics) Result(game, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Results[game+"/"+outcome]
}

// MockPersister counts Persist calls and can be told to fail.
type MockPersister struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (m *MockPersister) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Err
}

func (m *MockPersister) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockAcknowledger records the glyphs sent per message id.
type MockAcknowledger struct {
	mu    sync.Mutex
	Sent  map[string][]string
	Fails bool
}

func NewMockAcknowledger() *MockAcknowledger {
	return &MockAcknowledger{Sent: make(map[string][]string)}
}

func (m *MockAcknowledger) Acknowledge(_ context.Context, event models.ChatEvent, glyphs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fails {
		return errors.New("platform unavailable")
	}
	m.Sent[event.MessageID] = glyphs
	return nil
}

func (m *MockAcknowledger) Glyphs(messageID string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.Sent[messageID]
	return g, ok
}

// FixedClock returns a clock func pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
