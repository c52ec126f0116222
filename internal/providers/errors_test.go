package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestFetchErrorUnwrapsNotFound(t *testing.T) {
	err := fmt.Errorf("load view: %w", &FetchError{Path: "/players/nobody/details.json", StatusCode: 404, Err: ErrNotFound})

	if !IsNotFound(err) {
		t.Fatalf("expected not found through FetchError, got %v", err)
	}
	fe, ok := AsFetchError(err)
	if !ok || fe.StatusCode != 404 {
		t.Fatalf("expected fetch error with status, got %+v", fe)
	}
	if !strings.Contains(err.Error(), "status 404") || !strings.Contains(err.Error(), "/players/nobody") {
		t.Fatalf("expected path and status in message, got %q", err.Error())
	}

	transport := &FetchError{Path: "/teams/teams.json", Err: errors.New("connection refused")}
	if IsNotFound(transport) {
		t.Fatal("expected transport failure not to be not found")
	}
	if strings.Contains(transport.Error(), "status") {
		t.Fatalf("expected no status for transport failure, got %q", transport.Error())
	}
}

func TestPathsEscapeSlugs(t *testing.T) {
	cases := map[string]string{
		PlayersPath():                          "/players/players.json",
		PlayerDetailsPath("york-silk"):         "/players/york-silk/details.json",
		PlayerSummaryPath("pitching", "a b"):   "/pitching/a%20b/summary.json",
		TeamsPath():                            "/teams/teams.json",
		TeamDetailsPath("hades-tigers"):        "/teams/hades-tigers/details.json",
		TeamSummaryPath("batting", "x/y"):      "/teams/x%2Fy/batting.json",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}
