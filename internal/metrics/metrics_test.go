package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("player_details", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("player_details", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("player_details"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("player_details"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("player_details")
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
	if other := rec.Snapshot("player_summary"); other.Calls != 0 {
		t.Fatalf("expected untouched endpoint to be empty, got %+v", other)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("players", 5*time.Second)
	rec.RecordRateLimit("players", 0)

	if got := rec.RateLimitHits("players"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.Snapshot("players").LastRetryAfter; got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksRevalidationAndCache(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRevalidation("player", time.Millisecond, nil)
	rec.RecordRevalidation("player", time.Millisecond, errors.New("boom"))
	rec.RecordCacheLookup(true)
	rec.RecordCacheLookup(false)
	rec.RecordCacheLookup(false)

	cycles, errs := rec.RevalidationCycles("player")
	if cycles != 2 || errs != 1 {
		t.Fatalf("expected 2 cycles and 1 error, got %d/%d", cycles, errs)
	}
	hits, misses := rec.CacheLookups()
	if hits != 1 || misses != 2 {
		t.Fatalf("expected 1 hit and 2 misses, got %d/%d", hits, misses)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("players", time.Millisecond, nil)
	rec.RecordRateLimit("players", time.Second)
	rec.RecordRevalidation("team", time.Millisecond, nil)
	rec.RecordCacheLookup(true)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	if snap := rec.Snapshot("players"); snap.Calls != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
