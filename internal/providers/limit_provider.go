package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

const (
	defaultRatePerSecond = 10
	defaultRateBurst     = 20
)

// rateLimitedProvider wraps a StatsProvider with a token bucket shared by every endpoint.
type rateLimitedProvider struct {
	next    StatsProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a StatsProvider that allows perSecond upstream calls with the given burst.
// Calls block until a token is available or the context ends. Non-positive values fall back to defaults.
func NewRateLimitedProvider(next StatsProvider, perSecond, burst int, logger *slog.Logger) StatsProvider {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = defaultRateBurst
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, endpoint string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable", slog.String("endpoint", endpoint))
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", slog.String("endpoint", endpoint))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *rateLimitedProvider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	if err := p.wait(ctx, EndpointPlayers); err != nil {
		return nil, err
	}
	return p.next.FetchPlayers(ctx)
}

func (p *rateLimitedProvider) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	if err := p.wait(ctx, EndpointPlayer); err != nil {
		return players.Player{}, err
	}
	return p.next.FetchPlayer(ctx, slug)
}

func (p *rateLimitedProvider) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if err := p.wait(ctx, EndpointPlayerSummary); err != nil {
		return nil, err
	}
	return p.next.FetchPlayerSummary(ctx, group, slug)
}

func (p *rateLimitedProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if err := p.wait(ctx, EndpointTeams); err != nil {
		return nil, err
	}
	return p.next.FetchTeams(ctx)
}

func (p *rateLimitedProvider) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	if err := p.wait(ctx, EndpointTeam); err != nil {
		return teams.Team{}, err
	}
	return p.next.FetchTeam(ctx, slug)
}

func (p *rateLimitedProvider) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if err := p.wait(ctx, EndpointTeamSummary); err != nil {
		return nil, err
	}
	return p.next.FetchTeamSummary(ctx, group, slug)
}
