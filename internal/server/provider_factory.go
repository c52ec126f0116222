package server

import (
	"log/slog"

	"github.com/preston-bernstein/blaseball-reference/internal/config"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) (providers.StatsProvider, func() error) {
	base, closeFn := selectProvider(cfg, f.logger, f.metrics)
	return f.wrap(cfg, base), closeFn
}

// wrap decorates base so every call waits on the shared upstream quota and is measured.
func (f providerFactory) wrap(cfg config.Config, base providers.StatsProvider) providers.StatsProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.API.RateLimit, cfg.API.RateBurst, f.logger)
	return providers.NewInstrumentedProvider(limited, normalizeProviderName(cfg.Provider, base), f.metrics, f.logger)
}

// NewProvider builds the configured provider with the shared wrappers and returns a func releasing
// what it holds. It is nil when there is nothing to release.
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.StatsProvider, func() error) {
	return newProviderFactory(logger, recorder).build(cfg)
}
