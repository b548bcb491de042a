package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/app"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/cache"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/catalog"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/config"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/logging"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/telemetry"
	lambdatransport "github.com/awmpietro/golang-algorithm-visualizer/internal/transport/lambdatransport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.Configure(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), "dsaviz-lambda", telemetry.Config{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	reg, err := catalog.Standard()
	if err != nil {
		log.Fatal(err)
	}

	observer := app.NewAsyncExecutionObserver(app.NewExecutionLogger(logger), cfg.ObsBuffer)
	defer observer.Close()

	svc := app.NewService(reg, app.Options{
		MaxSteps:         cfg.MaxSteps,
		MaxSnapshotCells: cfg.MaxSnapshotCells,
		Filters:          cache.NewInMemory[*stepfilter.Filter](cfg.FilterCacheMaxItems),
		Observer:         observer,
		Logger:           logger,
	})
	h := lambdatransport.NewHandler(svc, logger, int(cfg.MaxBodyBytes))

	lambda.Start(h.Handle)
}
