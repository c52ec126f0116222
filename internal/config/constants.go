package config

import "time"

const (
	envPort              = "PORT"
	envProvider          = "PROVIDER"
	envAPIBaseURL        = "API_BASE_URL"
	envAPITimeout        = "API_TIMEOUT"
	envAPIRateLimit      = "API_RATE_LIMIT"
	envAPIRateBurst      = "API_RATE_BURST"
	envRevalidate        = "REVALIDATE_INTERVAL"
	envViewIdleTTL       = "VIEW_IDLE_TTL"
	envFirstRenderWait   = "FIRST_RENDER_WAIT"
	envCacheBackend      = "CACHE_BACKEND"
	envCacheTTL          = "CACHE_TTL"
	envRedisURL          = "REDIS_URL"
	envCORSOrigins       = "CORS_ORIGINS"
	envAdminToken        = "ADMIN_TOKEN"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	defaultPort          = "4000"
	defaultProvider      = ProviderFixture
	defaultAPIBaseURL    = "https://api.blaseball-reference.com/v1"
	defaultAPITimeout    = 10 * Duration(time.Second)
	defaultAPIRateLimit  = 10
	defaultAPIRateBurst  = 20
	defaultMetricsPort   = "9090"
	defaultServiceName   = "blaseball-reference"
	defaultCacheBackend  = CacheNone
	defaultCORSOrigins   = "*"
	defaultFirstRender   = 2 * Duration(time.Second)
	defaultViewIdleTTL   = 10 * Duration(time.Minute)
	defaultCacheTTL      = 30 * Duration(time.Second)
	defaultRedisURL      = "redis://localhost:6379/0"
	defaultRevalidateGap = 60 * Duration(time.Second)
)
