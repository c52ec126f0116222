package blaseball

import "time"

const (
	providerName       = "blaseball"
	defaultBaseURL     = "https://api.blaseball-reference.com/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 30 * time.Second
	errorBodyLimit     = 512
)
