package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"puzzlestats/internal/backfill"
	"puzzlestats/internal/controllers"
	"puzzlestats/internal/events"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/statistic/interfaces"
	"puzzlestats/internal/structures"
	"strconv"
	"time"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
	bus       *events.Bus
	backfill  *backfill.Runner
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, bus *events.Bus, runner *backfill.Runner, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with logging and metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, providers.LoggingMiddleware(logger, apiMux))

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error, starting with an empty store: %s", err)
	}

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		bus:       bus,
		backfill:  runner,
	}, nil
}

// Run serves until ctx is cancelled, then drains the event bus and writes
// the store one last time.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Close()
	a.scheduler.Init()

	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()
	busErr := make(chan error, 1)
	go func() {
		busErr <- a.bus.Run(busCtx)
	}()

	select {
	case <-a.bus.Running():
	case err := <-busErr:
		a.scheduler.Stop()
		return fmt.Errorf("event bus: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	if err := a.backfill.Stop(shutdownCtx); err != nil {
		a.logger.Warnf(providers.TypeApp, "Backfill still running at shutdown: %s", err)
	}
	if err := a.bus.Close(); err != nil {
		a.logger.Warnf(providers.TypeApp, "Event bus close: %s", err)
	}
	a.scheduler.Stop()

	if err := a.scheduler.Persist(); err != nil {
		return errors.Join(runErr, err)
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return runErr
}
