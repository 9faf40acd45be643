package backfill

import (
	"context"
	"errors"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/services"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

type Ingestor interface {
	services.Ingestor
	SuspendPersistence() (resume func())
}

type Request struct {
	Token     string `json:"token"`
	ChannelID string `json:"channelId"`
	// FromMessage is the last message already processed; replay resumes
	// right after it.
	FromMessage string `json:"fromMessage"`
}

type Report struct {
	RunID         string        `json:"runId"`
	Total         int           `json:"total"`
	Processed     int           `json:"processed"`
	Matched       int           `json:"matched"`
	LastMessageID string        `json:"lastMessageId,omitempty"`
	Elapsed       time.Duration `json:"elapsed"`
}

type Runner struct {
	guard     Guard
	gate      *Gate
	source    HistorySource
	ingest    Ingestor
	persister services.Persister
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	tracer    trace.Tracer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner(gate *Gate, source HistorySource, ingest Ingestor, persister services.Persister, logger providers.Logger, metrics providers.MetricsProviderInterface, tracer trace.Tracer) *Runner {
	return &Runner{
		gate:      gate,
		source:    source,
		ingest:    ingest,
		persister: persister,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
	}
}

func (r *Runner) Running() bool {
	return r.guard.Running()
}

// Run replays a channel's history through the ingest path and waits for
// the result. The report is valid up to LastMessageID even when an error is
// returned.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	if err := r.acquire(req); err != nil {
		return Report{}, err
	}
	defer r.guard.Release()

	runID := uuid.NewString()
	total, err := r.count(ctx, runID, req)
	if err != nil {
		return Report{RunID: runID}, err
	}
	return r.run(ctx, runID, req, total)
}

// Start checks the token, the guard and the history, then replays in the
// background and returns the run id at once.
func (r *Runner) Start(ctx context.Context, req Request) (string, error) {
	if err := r.acquire(req); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	total, err := r.count(ctx, runID, req)
	if err != nil {
		r.guard.Release()
		return "", err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	r.mu.Lock()
	r.cancel, r.done = cancel, done
	r.mu.Unlock()

	go func() {
		defer close(done)
		defer r.guard.Release()
		defer cancel()
		_, _ = r.run(runCtx, runID, req, total)
	}()
	return runID, nil
}

// Stop interrupts a run begun with Start and waits until it has logged its
// resume point and persisted what it ingested.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) acquire(req Request) error {
	if err := r.gate.Check(req.Token); err != nil {
		r.logger.Warnf(providers.TypeBackfill, "Rejected backfill for channel %s: bad token", req.ChannelID)
		return err
	}
	if !r.guard.TryAcquire() {
		return ErrAlreadyRunning
	}
	return nil
}

func (r *Runner) count(ctx context.Context, runID string, req Request) (int, error) {
	total, err := r.source.Count(ctx, req.ChannelID, req.FromMessage)
	if err != nil {
		r.logger.Errorf(providers.TypeBackfill, "Backfill %s: %s", runID, err)
		return 0, err
	}
	r.logger.Infof(providers.TypeBackfill, "Backfill %s: %d messages in channel %s", runID, total, req.ChannelID)
	return total, nil
}

// run expects the guard to be held. Per-write saves are suspended for the
// run and the store is persisted once at the end.
func (r *Runner) run(ctx context.Context, runID string, req Request, total int) (report Report, err error) {
	report.RunID = runID
	report.Total = total
	ctx, span := r.tracer.Start(ctx, "backfill.run", trace.WithAttributes(
		attribute.String("backfill.run_id", runID),
		attribute.String("channel.id", req.ChannelID),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		report.Elapsed = time.Since(start)
		r.metrics.ObserveBackfillDuration(report.Elapsed)
	}()

	resume := r.ingest.SuspendPersistence()
	progress := rate.Sometimes{First: 1, Every: 10, Interval: time.Second}

	err = r.source.Each(ctx, req.ChannelID, req.FromMessage, func(event models.ChatEvent) error {
		res, err := r.ingest.Ingest(ctx, event)
		if err != nil {
			return err
		}
		report.Processed++
		report.LastMessageID = event.MessageID
		if res.Status == services.StatusRecorded {
			report.Matched++
		}
		progress.Do(func() {
			r.logger.Infof(providers.TypeBackfill, "Backfill %s: %d/%d (%d%%)", runID, report.Processed, total, percent(report.Processed, total))
		})
		return nil
	})
	resume()

	if report.Matched > 0 {
		if persistErr := r.persister.Persist(); persistErr != nil {
			err = errors.Join(err, persistErr)
		}
	}

	span.SetAttributes(attribute.Int("backfill.processed", report.Processed), attribute.Int("backfill.matched", report.Matched))
	if errors.Is(err, context.Canceled) {
		span.SetStatus(codes.Error, "interrupted")
		r.logger.Warnf(providers.TypeBackfill, "Backfill %s interrupted after %d/%d, resume with fromMessage=%s",
			runID, report.Processed, total, report.LastMessageID)
		return report, err
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.logger.Errorf(providers.TypeBackfill, "Backfill %s stopped after %s: %s", runID, report.LastMessageID, err)
		return report, err
	}

	r.logger.Infof(providers.TypeBackfill, "Backfill %s complete: %d processed, %d recorded in %s",
		runID, report.Processed, report.Matched, time.Since(start).Round(time.Millisecond))
	return report, nil
}

func percent(n, total int) int {
	if total == 0 {
		return 100
	}
	return n * 100 / total
}
