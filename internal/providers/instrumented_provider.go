package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
)

// instrumentedProvider records attempts, latency and rate-limit responses for every upstream call.
type instrumentedProvider struct {
	next     StatsProvider
	name     string
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewInstrumentedProvider wraps next so every call is measured under its endpoint kind.
func NewInstrumentedProvider(next StatsProvider, name string, recorder *metrics.Recorder, logger *slog.Logger) StatsProvider {
	return &instrumentedProvider{
		next:     next,
		name:     name,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *instrumentedProvider) observe(ctx context.Context, endpoint string, start time.Time, err error, args ...any) {
	elapsed := p.now().Sub(start)
	p.recorder.RecordProviderAttempt(endpoint, elapsed, err)

	args = append(args,
		slog.String("endpoint", endpoint),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	if err == nil {
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "provider fetch", args...)
		return
	}
	if rl, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(endpoint, rl.RetryAfter)
		args = append(args, slog.Duration("retry_after", rl.RetryAfter))
	}
	args = append(args, slog.Any("err", err))
	level := slog.LevelWarn
	if IsNotFound(err) {
		level = slog.LevelInfo
	}
	logWithProvider(ctx, p.logger, level, p.name, "provider fetch failed", args...)
}

func (p *instrumentedProvider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	list, err := p.next.FetchPlayers(ctx)
	p.observe(ctx, EndpointPlayers, start, err, slog.Int(logging.FieldCount, len(list)))
	return list, err
}

func (p *instrumentedProvider) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	if p.next == nil {
		return players.Player{}, ErrProviderUnavailable
	}
	start := p.now()
	player, err := p.next.FetchPlayer(ctx, slug)
	p.observe(ctx, EndpointPlayer, start, err, slog.String(logging.FieldSlug, slug))
	return player, err
}

func (p *instrumentedProvider) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	summary, err := p.next.FetchPlayerSummary(ctx, group, slug)
	p.observe(ctx, EndpointPlayerSummary, start, err,
		slog.String(logging.FieldSlug, slug), slog.String(logging.FieldGroup, string(group)))
	return summary, err
}

func (p *instrumentedProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	list, err := p.next.FetchTeams(ctx)
	p.observe(ctx, EndpointTeams, start, err, slog.Int(logging.FieldCount, len(list)))
	return list, err
}

func (p *instrumentedProvider) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	if p.next == nil {
		return teams.Team{}, ErrProviderUnavailable
	}
	start := p.now()
	team, err := p.next.FetchTeam(ctx, slug)
	p.observe(ctx, EndpointTeam, start, err, slog.String(logging.FieldSlug, slug))
	return team, err
}

func (p *instrumentedProvider) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if p.next == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	summary, err := p.next.FetchTeamSummary(ctx, group, slug)
	p.observe(ctx, EndpointTeamSummary, start, err,
		slog.String(logging.FieldSlug, slug), slog.String(logging.FieldGroup, string(group)))
	return summary, err
}
