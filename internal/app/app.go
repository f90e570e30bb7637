package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planweave/planweave/internal/api"
	"github.com/planweave/planweave/internal/config"
	"github.com/planweave/planweave/internal/export"
	"github.com/planweave/planweave/internal/metrics"
	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/render"
	"github.com/planweave/planweave/internal/store"
)

// App is the main application
type App struct {
	config        *config.Config
	store         *store.Store
	mirror        *store.Mirror
	exporter      *export.Exporter
	apiServer     *api.Server
	metricsServer *metrics.Server
	collector     *metrics.Collector
	logger        *slog.Logger
}

// New creates a new application
func New(cfg *config.Config) (*App, error) {
	// Setup logger
	logger := SetupLogger(cfg.Logging)

	// Create storage
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// Metrics registry, shared by the API middleware and the exporter hooks
	m := metrics.New()
	metrics.SetGlobal(m)

	// Resume the mirrored working document, or start from the default
	doc, found, err := st.LoadState()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load working state: %w", err)
	}
	if !found {
		doc = plan.DefaultDocument()
		logger.Info("no mirrored state, starting from the default document")
	} else {
		logger.Info("resumed mirrored working state", "sections", len(doc.Sections))
	}

	mirror := store.NewMirror(st, cfg.Storage.MirrorDelay, logger.With("component", "mirror"), func(err error) {
		if err != nil {
			metrics.IncMirrorError()
			return
		}
		metrics.IncMirrorWrite()
	})

	// Renderer and export pipeline
	renderer, err := render.New()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	exporter := export.New(
		renderer,
		export.NewHTTPRasterizer(cfg.Export.Rasterizer),
		export.DirSink{Dir: cfg.Export.OutputDir},
		export.Config{Pause: cfg.Export.Pause, Background: cfg.Export.Background},
		logger.With("component", "export"),
	)
	exporter.SetResultHook(func(r export.Result) {
		metrics.IncExport(r.RegionID)
		metrics.ObserveExportDuration(r.RegionID, r.Duration.Seconds())
		if r.Err != nil {
			metrics.IncExportFailed(r.RegionID, string(r.FailedAt))
		}
	})

	// API server
	apiServer := api.NewServer(
		doc,
		st,
		mirror,
		renderer,
		exporter,
		&cfg.Server,
		logger.With("component", "api"),
	)

	// Metrics server and system gauge collector
	var metricsServer *metrics.Server
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(m, cfg.Metrics.ListenAddr, cfg.Metrics.Path, cfg.Metrics.AllowedIPs, logger.With("component", "metrics"))
		collector = metrics.NewCollector(m, st, cfg.Storage.Path, 0)
	}

	return &App{
		config:        cfg,
		store:         st,
		mirror:        mirror,
		exporter:      exporter,
		apiServer:     apiServer,
		metricsServer: metricsServer,
		collector:     collector,
		logger:        logger,
	}, nil
}

// Run starts all components and waits for shutdown
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting planweave",
		"api_addr", a.config.Server.ListenAddr,
		"storage", a.config.Storage.Path,
		"export_dir", a.config.Export.OutputDir,
	)

	// Create context that listens for signals
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if a.collector != nil {
		a.collector.Start(ctx)
	}

	// Channel to collect errors
	errCh := make(chan error, 2)

	// Start API server
	go func() {
		if err := a.apiServer.ListenAndServe(); err != nil {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	// Start metrics server if enabled
	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.ListenAndServe(); err != nil {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.logger.Error("server error", "error", err)
		cancel()
	}

	// Graceful shutdown
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all components
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := a.apiServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("api server shutdown error", "error", err)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("metrics server shutdown error", "error", err)
		}
	}

	if a.collector != nil {
		a.collector.Stop()
	}

	// Flush the pending mirror write before closing storage
	a.mirror.Close()

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", "error", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// SetupLogger creates a logger based on configuration
func SetupLogger(cfg config.LoggingConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
