package config

// ViewsConfig controls the lifetime and refresh cadence of per-entity page views.
type ViewsConfig struct {
	// RevalidateInterval is how often an open view refetches its data in the background.
	RevalidateInterval Duration
	// IdleTTL tears down views nobody requested for this long.
	IdleTTL Duration
	// FirstRenderWait bounds how long a request waits for a brand new view's first load.
	FirstRenderWait Duration
}

func loadViews() ViewsConfig {
	return ViewsConfig{
		RevalidateInterval: durationEnvOrDefault(envRevalidate, defaultRevalidateGap),
		IdleTTL:            durationEnvOrDefault(envViewIdleTTL, defaultViewIdleTTL),
		FirstRenderWait:    durationEnvOrDefault(envFirstRenderWait, defaultFirstRender),
	}
}
