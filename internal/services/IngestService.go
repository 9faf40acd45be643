package services

import (
	"context"
	"puzzlestats/internal/extractor"
	"puzzlestats/internal/models"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/scoring"
	"puzzlestats/internal/structures"
	"sort"
	"sync"
	"time"

	"github.com/gookit/validate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

type Status int

const (
	StatusIgnored Status = iota
	StatusNoMatch
	StatusDuplicate
	StatusRecorded
)

func (s Status) String() string {
	switch s {
	case StatusNoMatch:
		return "no_match"
	case StatusDuplicate:
		return "duplicate"
	case StatusRecorded:
		return "recorded"
	default:
		return "ignored"
	}
}

type Result struct {
	Status   Status          `json:"status"`
	Game     models.GameType `json:"game,omitempty"`
	PuzzleID int             `json:"puzzleId,omitempty"`
	Glyphs   []string        `json:"glyphs,omitempty"`
}

type TimedResult struct {
	UserID   string   `json:"userId"`
	Date     string   `json:"date"`
	Seconds  int      `json:"seconds"`
	Replaced bool     `json:"replaced"`
	Glyphs   []string `json:"glyphs"`
}

// Ingestor handles one inbound chat event to completion.
type Ingestor interface {
	Ingest(ctx context.Context, event models.ChatEvent) (Result, error)
}

// Acknowledger delivers reaction glyphs back to the chat platform.
type Acknowledger interface {
	Acknowledge(ctx context.Context, event models.ChatEvent, glyphs []string) error
}

type Persister interface {
	Persist() error
}

type Clock func() time.Time

func NewSystemClock() Clock {
	return time.Now
}

// IngestService is the single writer of the record store. Every event and
// manual submission runs under one lock, so a message is fully processed
// before the next one starts.
type IngestService struct {
	mu        sync.Mutex
	conf      *structures.Config
	records   RecordServiceInterface
	reactions *scoring.Reactions
	ack       Acknowledger
	persister Persister
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	tracer    trace.Tracer
	clock     Clock
	channels  map[string]struct{}
	suspended atomic.Bool
}

func NewIngestService(
	conf *structures.Config,
	records RecordServiceInterface,
	reactions *scoring.Reactions,
	ack Acknowledger,
	persister Persister,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	tracer trace.Tracer,
	clock Clock,
) *IngestService {
	channels := make(map[string]struct{}, len(conf.Game.Channels))
	for _, ch := range conf.Game.Channels {
		channels[ch] = struct{}{}
	}
	return &IngestService{
		conf:      conf,
		records:   records,
		reactions: reactions,
		ack:       ack,
		persister: persister,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		clock:     clock,
		channels:  channels,
	}
}

func (s *IngestService) accepts(event models.ChatEvent) bool {
	if event.AuthorIsBot || event.AuthorID == "" {
		return false
	}
	if len(s.channels) == 0 {
		return true
	}
	_, ok := s.channels[event.ChannelID]
	return ok
}

func (s *IngestService) Ingest(ctx context.Context, event models.ChatEvent) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "ingest.message", trace.WithAttributes(
		attribute.String("message.id", event.MessageID),
		attribute.String("channel.id", event.ChannelID),
	))
	defer span.End()

	if !s.accepts(event) {
		return Result{Status: StatusIgnored}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records.Rename(event.AuthorID, event.AuthorName)

	match, ok := extractor.Extract(event.Text)
	if !ok {
		return Result{Status: StatusNoMatch}, nil
	}

	res := Result{Game: match.Game, PuzzleID: match.PuzzleID}
	var stored bool
	switch match.Game {
	case models.GameWordle:
		rec, err := scoring.ScoreGuess(match.Outcome)
		if err != nil {
			s.logger.Warnf(providers.TypeIngest, "Message %s: %s", event.MessageID, err)
			return Result{Status: StatusNoMatch}, nil
		}
		stored = s.records.AddGuess(event.AuthorID, event.AuthorName, match.PuzzleID, rec)
		res.Glyphs = s.reactions.Guess(rec)
	case models.GameConnections:
		scored := scoring.ScoreGrouping(match.Grid)
		stored = s.records.AddGrouping(event.AuthorID, event.AuthorName, match.PuzzleID, scored.Record)
		res.Glyphs = s.reactions.Grouping(scored.Record)
	}
	span.SetAttributes(attribute.String("game", string(match.Game)), attribute.Int("puzzle.id", match.PuzzleID))

	if !stored {
		res.Status = StatusDuplicate
		res.Glyphs = nil
		s.metrics.IncResults(string(match.Game), res.Status.String())
		s.logger.Debugf(providers.TypeIngest, "Duplicate %s #%d from %s ignored", match.Game, match.PuzzleID, event.AuthorID)
		return res, nil
	}

	res.Status = StatusRecorded
	s.metrics.IncResults(string(match.Game), res.Status.String())
	s.logger.Infof(providers.TypeIngest, "Recorded %s #%d for %s (%s)", match.Game, match.PuzzleID, event.AuthorName, event.AuthorID)
	s.persistOnWrite()

	if err := s.ack.Acknowledge(ctx, event, res.Glyphs); err != nil {
		s.logger.Warnf(providers.TypeIngest, "Acknowledge %s failed: %s", event.MessageID, err)
	}
	return res, nil
}

// SubmitTimed records a manual Mini time. Malformed input is returned as a
// *models.ValidationError and nothing is stored.
func (s *IngestService) SubmitTimed(ctx context.Context, sub models.TimedSubmission) (TimedResult, error) {
	_, span := s.tracer.Start(ctx, "ingest.timed")
	defer span.End()

	v := validate.Struct(&sub)
	if !v.Validate() {
		field, msg := firstError(v.Errors)
		return TimedResult{}, models.NewValidationError(field, msg)
	}

	date, err := extractor.ParseDate(sub.Date, s.clock())
	if err != nil {
		return TimedResult{}, err
	}
	seconds, err := extractor.ParseDuration(sub.Time)
	if err != nil {
		return TimedResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.records.PutTimed(sub.UserID, sub.Username, date, seconds)
	outcome := StatusRecorded.String()
	if replaced {
		outcome = "replaced"
	}
	s.metrics.IncResults(string(models.GameMini), outcome)
	s.logger.Infof(providers.TypeIngest, "Mini %s for %s: %ds (replaced=%t)", date, sub.UserID, seconds, replaced)
	s.persistOnWrite()

	return TimedResult{
		UserID:   sub.UserID,
		Date:     date,
		Seconds:  seconds,
		Replaced: replaced,
		Glyphs:   s.reactions.Mini(),
	}, nil
}

// SuspendPersistence turns off per-write saves until the returned func is
// called.
func (s *IngestService) SuspendPersistence() (resume func()) {
	s.suspended.Store(true)
	return func() { s.suspended.Store(false) }
}

func (s *IngestService) persistOnWrite() {
	if !s.conf.Persistence.SaveOnWrite || s.suspended.Load() {
		return
	}
	if err := s.persister.Persist(); err != nil {
		s.logger.Errorf(providers.TypeIngest, "Persist after write failed: %s", err)
	}
}

func firstError(errs validate.Errors) (string, string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if msg := errs.FieldOne(field); msg != "" {
			return field, msg
		}
	}
	return "", "invalid submission"
}

// LogAcknowledger stands in for the chat platform binding and only logs
// the glyphs it would have added.
type LogAcknowledger struct {
	logger providers.Logger
}

func NewLogAcknowledger(logger providers.Logger) *LogAcknowledger {
	return &LogAcknowledger{logger: logger}
}

func (a *LogAcknowledger) Acknowledge(_ context.Context, event models.ChatEvent, glyphs []string) error {
	a.logger.Infof(providers.TypeIngest, "React to %s in %s: %v", event.MessageID, event.ChannelID, glyphs)
	return nil
}
