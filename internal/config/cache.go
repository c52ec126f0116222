package config

import "strings"

// Cache backends understood by CACHE_BACKEND.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig controls the upstream document cache.
type CacheConfig struct {
	Backend  string
	TTL      Duration
	RedisURL string
}

func loadCache() CacheConfig {
	backend := strings.ToLower(envOrDefault(envCacheBackend, defaultCacheBackend))
	switch backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		backend = defaultCacheBackend
	}
	return CacheConfig{
		Backend:  backend,
		TTL:      durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		RedisURL: envOrDefault(envRedisURL, defaultRedisURL),
	}
}
