package config

// HTTPConfig controls the public HTTP surface.
type HTTPConfig struct {
	CORSOrigins []string
	// AdminToken guards the admin endpoints; empty disables them.
	AdminToken string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		CORSOrigins: listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		AdminToken:  envOrDefault(envAdminToken, ""),
	}
}
