package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/cache"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/catalog"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/config"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/logging"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/telemetry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/transport/httptransport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Configure(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "dsaviz-http", telemetry.Config{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	reg, err := catalog.Standard()
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	observer := app.NewAsyncExecutionObserver(app.NewExecutionLogger(logger), cfg.ObsBuffer)
	svc := app.NewService(reg, app.Options{
		MaxSteps:         cfg.MaxSteps,
		MaxSnapshotCells: cfg.MaxSnapshotCells,
		Filters:          cache.NewInMemory[*stepfilter.Filter](cfg.FilterCacheMaxItems),
		Observer:         observer,
		Logger:           logger,
	})
	h := httptransport.NewHandler(svc,
		httptransport.WithLogger(logger),
		httptransport.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.CORS(cfg.CORSOrigins, h.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr, "algorithms", len(reg.List()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	observer.Close()
	if dropped := observer.Dropped(); dropped > 0 {
		logger.Warn("execution events dropped", "count", dropped)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if ferr := shutdownTracing(flushCtx); ferr != nil {
		logger.Warn("flush tracing", "error", ferr)
	}
	return err
}
