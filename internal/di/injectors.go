//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"puzzlestats/internal"
	"puzzlestats/internal/backfill"
	"puzzlestats/internal/controllers"
	"puzzlestats/internal/events"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/scoring"
	"puzzlestats/internal/services"
	"puzzlestats/internal/statistic"
	"puzzlestats/internal/statistic/interfaces"
	"puzzlestats/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewTracerProvider,
	wire.Bind(new(providers.UserCounter), new(services.RecordServiceInterface)),

	statistic.NewZstdCompressor,
	services.NewRecordService,
	statistic.NewFileManager,
	statistic.NewScheduler,
	wire.Bind(new(services.Persister), new(interfaces.SchedulerInterface)),

	scoring.NewReactions,
	services.NewSystemClock,
	services.NewLogAcknowledger,
	wire.Bind(new(services.Acknowledger), new(*services.LogAcknowledger)),
	services.NewIngestService,
	services.NewStatsService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,

		wire.Bind(new(services.Ingestor), new(*services.IngestService)),
		events.NewBus,
		wire.Bind(new(events.Publisher), new(*events.Bus)),

		backfill.NewGate,
		backfill.NewHistorySource,
		wire.Bind(new(backfill.Ingestor), new(*services.IngestService)),
		backfill.NewRunner,
		wire.Bind(new(controllers.BackfillRunner), new(*backfill.Runner)),
		wire.Bind(new(controllers.TimedSubmitter), new(*services.IngestService)),

		controllers.NewApiController,
		controllers.NewReportController,
		controllers.NewBackfillController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitOffline(cfg *structures.CliFlags) (*internal.Offline, error) {

	wire.Build(
		coreSet,
		internal.NewOffline,
	)

	return nil, nil
}
