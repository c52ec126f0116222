package config

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Provider string
	API      APIConfig
	Views    ViewsConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
	Metrics  MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Provider: envOrDefault(envProvider, defaultProvider),
		API:      loadAPI(),
		Views:    loadViews(),
		Cache:    loadCache(),
		HTTP:     loadHTTP(),
		Metrics:  loadMetrics(),
	}
}
