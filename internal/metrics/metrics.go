package metrics

import (
	"sync"
	"time"
)

type endpointStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type revalidationStats struct {
	cycles int
	errors int
}

// Recorder captures lightweight, in-memory metrics about upstream calls, view revalidation and the
// document cache, mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu           sync.Mutex
	endpoints    map[string]*endpointStats
	revalidation map[string]*revalidationStats
	cacheHits    int
	cacheMisses  int
	httpRoutes   map[string]int
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		endpoints:    make(map[string]*endpointStats),
		revalidation: make(map[string]*revalidationStats),
		httpRoutes:   make(map[string]int),
		otel:         otel,
	}
}

// RecordProviderAttempt increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureEndpoint(endpoint)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(endpoint, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(endpoint string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureEndpoint(endpoint)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(endpoint, retryAfter)
	}
}

// RecordRevalidation tracks one background refresh of a view of the given kind.
func (r *Recorder) RecordRevalidation(view string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.revalidation[view]
	if !ok {
		stats = &revalidationStats{}
		r.revalidation[view] = stats
	}
	stats.cycles++
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRevalidation(view, duration, err)
	}
}

// RecordCacheLookup tracks document cache hits and misses.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	if hit {
		r.cacheHits++
	} else {
		r.cacheMisses++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheLookup(hit)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.httpRoutes[route]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, route, status, duration)
	}
}

// HTTPRequests returns how many requests were served for a route pattern.
func (r *Recorder) HTTPRequests(route string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.httpRoutes[route]
}

// ProviderCalls returns the total attempts recorded for an endpoint.
func (r *Recorder) ProviderCalls(endpoint string) int {
	return r.Snapshot(endpoint).Calls
}

// ProviderErrors returns the total failed attempts recorded for an endpoint.
func (r *Recorder) ProviderErrors(endpoint string) int {
	return r.Snapshot(endpoint).Errors
}

// RateLimitHits returns the number of rate limit events seen for an endpoint.
func (r *Recorder) RateLimitHits(endpoint string) int {
	return r.Snapshot(endpoint).RateLimitHits
}

// RevalidationCycles returns how many refreshes ran for views of the given kind, and how many failed.
func (r *Recorder) RevalidationCycles(view string) (cycles, errors int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.revalidation[view]; ok {
		return stats.cycles, stats.errors
	}
	return 0, 0
}

// CacheLookups returns cache hit and miss counts.
func (r *Recorder) CacheLookups() (hits, misses int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cacheHits, r.cacheMisses
}

// Snapshot returns a copy of the current stats for an endpoint.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(endpoint string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.endpoints[endpoint]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureEndpoint must be called with r.mu held.
func (r *Recorder) ensureEndpoint(endpoint string) *endpointStats {
	stats, ok := r.endpoints[endpoint]
	if !ok {
		stats = &endpointStats{}
		r.endpoints[endpoint] = stats
	}
	return stats
}
