package statistic

import (
	"os"
	"path/filepath"
	"puzzlestats/internal/models"
	"puzzlestats/internal/services"
	"puzzlestats/internal/testutil"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(path string, svc services.RecordServiceInterface) (*Scheduler, *testutil.MockLogger, *testutil.MockMetrics) {
	conf := testConfig(path, false)
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	fm := NewFileManager(conf, &testutil.MockCompressor{}, svc, logger)
	s := NewScheduler(conf, logger, svc, fm, metrics).(*Scheduler)
	return s, logger, metrics
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	svc := services.NewRecordService()
	s, _, _ := newTestScheduler(filepath.Join(t.TempDir(), "absent.json"), svc)

	require.NoError(t, s.Restore())
	assert.Equal(t, 0, svc.UserCount())
}

func TestScheduler_Restore_CorruptFileMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	svc := seededService()
	s, logger, _ := newTestScheduler(path, svc)
	s.now = testutil.FixedClock(time.Unix(1752688800, 0))

	err := s.Restore()
	assert.Error(t, err)
	assert.Equal(t, 0, svc.UserCount())
	assert.True(t, logger.Has("warn", "moved to"))

	_, err = os.Stat(path + ".corrupt-1752688800")
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// the empty store is not dirty
	require.NoError(t, s.PersistIfDirty())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_Restore_LegacyLeavesStoreDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": {"u1": {"username": "alice", "wordle": {"5": {"guesses": 2}}}}}`), 0644))

	svc := services.NewRecordService()
	s, _, metrics := newTestScheduler(path, svc)
	require.NoError(t, s.Restore())

	require.NoError(t, s.PersistIfDirty())
	assert.Equal(t, 1, metrics.Persists)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"version":2`))
}

func TestScheduler_PersistIfDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	svc := services.NewRecordService()
	s, _, metrics := newTestScheduler(path, svc)
	require.NoError(t, s.Restore())

	require.NoError(t, s.PersistIfDirty())
	assert.Equal(t, 0, metrics.Persists)

	svc.AddGuess("u1", "alice", 1, models.GuessRecord{Guesses: 2})
	require.NoError(t, s.PersistIfDirty())
	assert.Equal(t, 1, metrics.Persists)

	// duplicate does not dirty the store
	svc.AddGuess("u1", "alice", 1, models.GuessRecord{Guesses: 5})
	require.NoError(t, s.PersistIfDirty())
	assert.Equal(t, 1, metrics.Persists)
}

func TestScheduler_Persist_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	src := seededService()
	s, _, _ := newTestScheduler(path, src)
	require.NoError(t, s.Persist())

	dst := services.NewRecordService()
	s2, _, _ := newTestScheduler(path, dst)
	require.NoError(t, s2.Restore())
	assert.Equal(t, src.GetSnapshot(), dst.GetSnapshot())
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "store.json")
	svc := seededService()
	s, logger, metrics := newTestScheduler(path, svc)

	assert.Error(t, s.Persist())
	assert.Equal(t, 0, metrics.Persists)
	assert.True(t, logger.Has("error", "persisting"))
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _, _ := newTestScheduler(filepath.Join(t.TempDir(), "store.json"), services.NewRecordService())
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	svc := services.NewRecordService()
	s, _, _ := newTestScheduler(path, svc)
	s.config.Persistence.SaveInterval = time.Second
	s.Init()
	svc.AddGuess("u1", "alice", 1, models.GuessRecord{Guesses: 2})

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 5*time.Second, 100*time.Millisecond)
	s.Stop()
}
