package statistic

import (
	"fmt"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
	"os"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/services"
	"puzzlestats/internal/statistic/interfaces"
	"puzzlestats/internal/structures"
	"sync"
	"time"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.RecordServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
	// saved is the store revision last written to disk.
	saved atomic.Uint64
	now   func() time.Time
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := max(s.config.Persistence.SaveInterval, time.Second)

	s.cron.AddFunc(gron.Every(interval), func() {
		if err := s.PersistIfDirty(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the store. An unreadable file is moved aside and the
// service starts empty; the returned error is for logging only.
func (s *Scheduler) Restore() error {
	path := s.config.Persistence.FilePath
	migrated, err := s.fileManager.LoadFromFile(path)
	if err != nil {
		aside := fmt.Sprintf("%s.corrupt-%d", path, s.now().Unix())
		if renameErr := os.Rename(path, aside); renameErr != nil {
			s.logger.Errorf(providers.TypeApp, "Unable to move unreadable store aside: %s", renameErr)
		} else {
			s.logger.Warnf(providers.TypeApp, "Unreadable store moved to %s", aside)
		}
		s.service.PutData(nil)
		s.saved.Store(s.service.Revision())
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if migrated {
		s.logger.Infof(providers.TypeApp, "Store will be rewritten in the current format on next save")
		return nil
	}
	s.saved.Store(s.service.Revision())
	s.logger.Infof(providers.TypeApp, "Restored %d users from %s", s.service.UserCount(), path)
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.persistLocked()
}

// PersistIfDirty saves only when the store changed since the last save.
func (s *Scheduler) PersistIfDirty() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if s.service.Revision() == s.saved.Load() {
		return nil
	}
	return s.persistLocked()
}

func (s *Scheduler) persistLocked() error {
	start := time.Now()
	revision := s.service.Revision()

	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.saved.Store(revision)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.logger.Debugf(providers.TypeApp, "Persisted revision %d to %s", revision, s.config.Persistence.FilePath)
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RecordServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
		now:         time.Now,
	}
}
