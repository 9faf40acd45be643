package internal

import (
	"context"
	"fmt"
	"os"
	"puzzlestats/internal/backfill"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/render"
	"puzzlestats/internal/services"
	"puzzlestats/internal/statistic"
	"puzzlestats/internal/statistic/interfaces"
	"puzzlestats/internal/structures"

	"go.opentelemetry.io/otel/trace"
)

// Offline runs maintenance commands against the store without serving HTTP.
type Offline struct {
	conf        *structures.Config
	logger      providers.Logger
	scheduler   interfaces.SchedulerInterface
	fileManager *statistic.FileManager
	ingest      *services.IngestService
	stats       services.StatsServiceInterface
	metrics     providers.MetricsProviderInterface
	tracer      trace.Tracer
}

func NewOffline(conf *structures.Config, logger providers.Logger, scheduler interfaces.SchedulerInterface, fileManager *statistic.FileManager, ingest *services.IngestService, stats services.StatsServiceInterface, metrics providers.MetricsProviderInterface, tracer trace.Tracer) *Offline {
	return &Offline{
		conf:        conf,
		logger:      logger,
		scheduler:   scheduler,
		fileManager: fileManager,
		ingest:      ingest,
		stats:       stats,
		metrics:     metrics,
		tracer:      tracer,
	}
}

func (o *Offline) restore() {
	if err := o.scheduler.Restore(); err != nil {
		o.logger.Errorf(providers.TypeApp, "Restore error, starting with an empty store: %s", err)
	}
}

// Backfill replays a JSONL channel export into the store.
func (o *Offline) Backfill(ctx context.Context, path, channelID, fromMessage string) (backfill.Report, error) {
	o.restore()

	token, err := backfill.GenerateToken()
	if err != nil {
		return backfill.Report{}, err
	}
	runner := backfill.NewRunner(backfill.NewGateWithToken(token), backfill.NewJSONLHistory(path), o.ingest, o.scheduler, o.logger, o.metrics, o.tracer)
	return runner.Run(ctx, backfill.Request{Token: token, ChannelID: channelID, FromMessage: fromMessage})
}

// Migrate rewrites a store file, legacy or current, in the current format.
func (o *Offline) Migrate(src, dst string) error {
	storage, migrated, err := o.fileManager.ReadStorage(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if storage == nil {
		return fmt.Errorf("read %s: %w", src, os.ErrNotExist)
	}
	if err := o.fileManager.WriteStorage(dst, storage); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	o.logger.Infof(providers.TypeApp, "Wrote %d users to %s (migrated=%t)", len(storage.Users), dst, migrated)
	return nil
}

// Export writes the xlsx workbook for the persisted store.
func (o *Offline) Export(dst string) error {
	o.restore()

	buf, err := render.Workbook(render.Collect(o.stats))
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		return err
	}
	o.logger.Infof(providers.TypeApp, "Exported workbook to %s", dst)
	return nil
}

func (o *Offline) Close() {
	o.fileManager.Close()
	o.logger.Close()
}
