package server

import (
	"log/slog"

	"github.com/preston-bernstein/blaseball-reference/internal/cache"
	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
	"github.com/preston-bernstein/blaseball-reference/internal/providers/blaseball"
	"github.com/preston-bernstein/blaseball-reference/internal/providers/fixture"
)

// selectProvider builds the configured base provider and a func releasing what it holds.
func selectProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.StatsProvider, func() error) {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New(), nil
	case config.ProviderAPI:
		docs, closeCache, err := cache.New(cfg.Cache, recorder, logger)
		if err != nil {
			logging.Warn(logger, "document cache unavailable, continuing without it",
				slog.String("backend", cfg.Cache.Backend),
				slog.Any("err", err),
			)
			docs, closeCache = nil, nil
		}
		return blaseball.NewClient(blaseball.Config{
			BaseURL:  cfg.API.BaseURL,
			Timeout:  cfg.API.Timeout,
			Cache:    docs,
			CacheTTL: cfg.Cache.TTL,
			Logger:   logger,
		}), closeCache
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New(), nil
	}
}
