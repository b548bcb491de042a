package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultFilterCacheMaxItems = 1024
	defaultMaxSteps            = 100_000
	defaultMaxSnapshotCells    = 1 << 25
	defaultObsBuffer           = 4096
	defaultMaxBodyBytes        = 1 << 20
)

type Runtime struct {
	HTTPAddr            string        `env:"DSAVIZ_HTTP_ADDR" envDefault:":8080"`
	LogLevel            string        `env:"DSAVIZ_LOG_LEVEL" envDefault:"info"`
	FilterCacheMaxItems int           `env:"DSAVIZ_FILTER_CACHE_MAX_ITEMS" envDefault:"1024"`
	MaxSteps            int           `env:"DSAVIZ_MAX_STEPS" envDefault:"100000"`
	MaxSnapshotCells    int           `env:"DSAVIZ_MAX_SNAPSHOT_CELLS" envDefault:"33554432"`
	ObsBuffer           int           `env:"DSAVIZ_OBS_BUFFER" envDefault:"4096"`
	MaxBodyBytes        int64         `env:"DSAVIZ_MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout     time.Duration `env:"DSAVIZ_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	OTelEndpoint        string        `env:"DSAVIZ_OTEL_ENDPOINT"`
	OTelEnabled         bool          `env:"DSAVIZ_OTEL_ENABLED" envDefault:"true"`
	CORSOrigins         []string      `env:"DSAVIZ_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
}

// Load reads the runtime configuration from the environment. Sizes below
// one fall back to their defaults.
func Load() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, fmt.Errorf("load runtime config: %w", err)
	}

	rt.FilterCacheMaxItems = atLeastOne(rt.FilterCacheMaxItems, defaultFilterCacheMaxItems)
	rt.MaxSteps = atLeastOne(rt.MaxSteps, defaultMaxSteps)
	rt.MaxSnapshotCells = atLeastOne(rt.MaxSnapshotCells, defaultMaxSnapshotCells)
	rt.ObsBuffer = atLeastOne(rt.ObsBuffer, defaultObsBuffer)
	if rt.MaxBodyBytes < 1 {
		rt.MaxBodyBytes = defaultMaxBodyBytes
	}
	if rt.ShutdownTimeout <= 0 {
		rt.ShutdownTimeout = 10 * time.Second
	}
	return rt, nil
}

func atLeastOne(v, fallback int) int {
	if v < 1 {
		return fallback
	}
	return v
}
