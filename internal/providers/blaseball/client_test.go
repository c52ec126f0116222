package blaseball

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/cache"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc, c cache.Cache) *Client {
	return NewClient(Config{
		BaseURL:    "http://example.com/v1/",
		HTTPClient: &http.Client{Transport: rt},
		Cache:      c,
	})
}

func TestFetchPlayerHitsDetailsPathAndDecodes(t *testing.T) {
	var capturedPath string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.EscapedPath()
		if req.Header.Get("Accept") != "application/json" {
			t.Fatalf("expected json accept header, got %s", req.Header.Get("Accept"))
		}
		return jsonResponse(http.StatusOK, `{
			"id": "p1",
			"slug": "york-silk",
			"name": "York Silk",
			"aliases": [],
			"position": "lineup",
			"currentTeamName": "Hades Tigers",
			"debutSeason": "1",
			"debutDay": 0,
			"isIncinerated": false
		}`), nil
	})

	player, err := newTestClient(rt, nil).FetchPlayer(context.Background(), "york-silk")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedPath != "/v1/players/york-silk/details.json" {
		t.Fatalf("unexpected path %s", capturedPath)
	}
	if player.Name != "York Silk" || player.DebutSeason.Int() != 1 {
		t.Fatalf("unexpected player %+v", player)
	}
	if group, ok := player.Group(); !ok || group != players.GroupBatting {
		t.Fatalf("expected batting group, got %s", group)
	}
}

func TestFetchSummaryPaths(t *testing.T) {
	var paths []string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.EscapedPath())
		return jsonResponse(http.StatusOK, `{"seasons": {"0": [{"era": 3.1}]}, "postseasons": {}}`), nil
	})
	client := newTestClient(rt, nil)
	ctx := context.Background()

	summary, err := client.FetchPlayerSummary(ctx, players.GroupPitching, "jessica-telephone")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summary.Seasons["0"]) != 1 || summary.HasPostseason() {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if _, err := client.FetchTeamSummary(ctx, players.GroupBatting, "hades-tigers"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"/v1/pitching/jessica-telephone/summary.json", "/v1/teams/hades-tigers/batting.json"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("expected paths %v, got %v", want, paths)
	}
}

func TestFetchListsDecodeArrays(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/v1/players/players.json":
			return jsonResponse(http.StatusOK, `[{"slug": "york-silk"}, {"slug": "jessica-telephone"}]`), nil
		case "/v1/teams/teams.json":
			return jsonResponse(http.StatusOK, `[{"slug": "hades-tigers", "fullName": "Hades Tigers"}]`), nil
		}
		return jsonResponse(http.StatusNotFound, ""), nil
	})
	client := newTestClient(rt, nil)

	list, err := client.FetchPlayers(context.Background())
	if err != nil || len(list) != 2 || list[1].Slug != "jessica-telephone" {
		t.Fatalf("unexpected players %+v err=%v", list, err)
	}
	teamList, err := client.FetchTeams(context.Background())
	if err != nil || len(teamList) != 1 || teamList[0].FullName != "Hades Tigers" {
		t.Fatalf("unexpected teams %+v err=%v", teamList, err)
	}
}

func TestFetchMapsNotFound(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, "missing"), nil
	})

	_, err := newTestClient(rt, nil).FetchTeam(context.Background(), "nobody")
	if !providers.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.Path != "/teams/nobody/details.json" || fe.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected fetch error %+v", fe)
	}
}

func TestFetchHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, strings.Repeat("x", 2000)), nil
	})

	_, err := newTestClient(rt, nil).FetchPlayers(context.Background())
	fe, ok := providers.AsFetchError(err)
	if !ok || fe.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status error, got %v", err)
	}
	if providers.IsNotFound(err) {
		t.Fatal("expected bad gateway not to be not found")
	}
	if len(err.Error()) > errorBodyLimit+200 {
		t.Fatalf("expected body excerpt to be truncated, got %d chars", len(err.Error()))
	}
}

func TestFetchReportsRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "3")
		return resp, nil
	})

	_, err := newTestClient(rt, nil).FetchPlayer(context.Background(), "york-silk")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 3*time.Second || rl.Message != "slow down" || rl.Provider != providerName {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestFetchHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})

	_, err := newTestClient(rt, nil).FetchPlayerSummary(context.Background(), players.GroupBatting, "york-silk")
	if _, ok := providers.AsFetchError(err); !ok || err == nil {
		t.Fatalf("expected decode fetch error, got %v", err)
	}
}

func TestFetchHandlesTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := newTestClient(rt, nil).FetchTeams(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error to be wrapped, got %v", err)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls atomic.Int32
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusOK, `[{"slug": "york-silk"}]`), nil
	})
	client := newTestClient(rt, cache.NewMemoryCache())

	for i := 0; i < 3; i++ {
		list, err := client.FetchPlayers(context.Background())
		if err != nil || len(list) != 1 {
			t.Fatalf("unexpected result %+v err=%v", list, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", calls.Load())
	}
}

func TestFetchDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusServiceUnavailable, "down"), nil
	})
	client := newTestClient(rt, cache.NewMemoryCache())

	_, _ = client.FetchPlayers(context.Background())
	_, _ = client.FetchPlayers(context.Background())
	if calls.Load() != 2 {
		t.Fatalf("expected failures to bypass the cache, got %d calls", calls.Load())
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %s", httpClient.Timeout)
	}
	if c.cacheTTL != defaultCacheTTL {
		t.Fatalf("expected default cache ttl, got %s", c.cacheTTL)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
