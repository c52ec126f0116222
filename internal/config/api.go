package config

// Providers understood by PROVIDER.
const (
	ProviderFixture = "fixture"
	ProviderAPI     = "api"
)

// APIConfig controls how we talk to the statistics API.
type APIConfig struct {
	BaseURL   string
	Timeout   Duration
	RateLimit int // sustained requests per second
	RateBurst int
}

func loadAPI() APIConfig {
	return APIConfig{
		BaseURL:   envOrDefault(envAPIBaseURL, defaultAPIBaseURL),
		Timeout:   durationEnvOrDefault(envAPITimeout, defaultAPITimeout),
		RateLimit: intEnvOrDefault(envAPIRateLimit, defaultAPIRateLimit),
		RateBurst: intEnvOrDefault(envAPIRateBurst, defaultAPIRateBurst),
	}
}
