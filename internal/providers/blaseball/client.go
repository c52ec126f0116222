package blaseball

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/cache"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

// Config controls how the client reaches the statistics API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	// Cache, when set, holds successful response bodies for CacheTTL.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Client fetches precomputed JSON documents from the statistics API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		cache:      cfg.Cache,
		cacheTTL:   ttl,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchPlayers retrieves the enumeration of every player.
func (c *Client) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	var out []players.Player
	if err := c.getJSON(ctx, providers.PlayersPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchPlayer retrieves the details document of one player.
func (c *Client) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	var out players.Player
	if err := c.getJSON(ctx, providers.PlayerDetailsPath(slug), &out); err != nil {
		return players.Player{}, err
	}
	return out, nil
}

// FetchPlayerSummary retrieves the season summary of a player for a stat group.
func (c *Client) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	var out stats.Summary
	if err := c.getJSON(ctx, providers.PlayerSummaryPath(group, slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTeams retrieves the enumeration of every team.
func (c *Client) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	if err := c.getJSON(ctx, providers.TeamsPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchTeam retrieves the details document of one team.
func (c *Client) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	var out teams.Team
	if err := c.getJSON(ctx, providers.TeamDetailsPath(slug), &out); err != nil {
		return teams.Team{}, err
	}
	return out, nil
}

// FetchTeamSummary retrieves the per-player season rows of a team for a stat group.
func (c *Client) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	var out stats.Summary
	if err := c.getJSON(ctx, providers.TeamSummaryPath(group, slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &providers.FetchError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// get returns the raw document body, consulting the cache first when one is configured.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		switch {
		case err != nil:
			logging.Warn(c.logger, "document cache read failed", slog.String(logging.FieldPath, path), slog.Any("err", err))
		case ok:
			return body, nil
		}
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && json.Valid(body) {
		if err := c.cache.Set(ctx, path, body, c.cacheTTL); err != nil {
			logging.Warn(c.logger, "document cache write failed", slog.String(logging.FieldPath, path), slog.Any("err", err))
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &providers.FetchError{Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.FetchError{Path: path, StatusCode: resp.StatusCode, Err: providers.ErrNotFound}
	case resp.StatusCode == http.StatusTooManyRequests:
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.FetchError{Path: path, StatusCode: resp.StatusCode, Err: &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    strings.TrimSpace(string(excerpt)),
		}}
	case resp.StatusCode != http.StatusOK:
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.FetchError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(excerpt))),
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, &providers.FetchError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return buf.Bytes(), nil
}
