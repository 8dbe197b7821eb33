package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/agenda/internal/adapters/blob"
	"github.com/okian/agenda/internal/adapters/export"
	"github.com/okian/agenda/internal/adapters/http/api"
	"github.com/okian/agenda/internal/adapters/http/swagger"
	app "github.com/okian/agenda/internal/app"
	"github.com/okian/agenda/internal/config"
	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		// Logger isn't available yet.
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open event store", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := newHTTPServer(ctx, cfg, svc, loggerInstance)

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Validated by config.Load.
	grace, _ := cfg.ShutdownGrace()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newService opens the configured blob store and builds the calendar service.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	overrides, err := cfg.GoodFriday()
	if err != nil {
		return nil, err
	}
	store, err := blob.Open(cfg.StoreBackend, cfg.StoreDir)
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log),
		app.WithBlobStore(store),
		app.WithStoreKey(cfg.StoreKey),
		app.WithQueueSize(cfg.SaveQueueSize),
		app.WithSaveTimeout(cfg.SaveTimeout()),
		app.WithRegionalHolidays(cfg.IncludeRegionalHolidays),
		app.WithGoodFridayOverrides(overrides),
	), nil
}

// newHTTPServer registers the API and OpenAPI routes on a fresh mux behind
// the recovery and request-log middleware.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	api.NewServer(svc, svc, export.WithProductID(cfg.ICSProductID)).Register(ctx, mux)
	swagger.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Chain(log.Named("http")).Then(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes store gauges from the service stats.
// GetStats already updates the save queue length.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if buckets, ok := stats["buckets"].(int); ok {
		metrics.UpdateStoreBuckets(buckets)
	}
	if events, ok := stats["events"].(int); ok {
		metrics.UpdateStoreEvents(events)
	}
}
