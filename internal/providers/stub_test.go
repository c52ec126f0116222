package providers

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

// countingProvider returns Err from every call and counts invocations.
type countingProvider struct {
	Err   error
	Calls atomic.Int32
}

func (p *countingProvider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return []players.Player{{Slug: "york-silk"}}, nil
}

func (p *countingProvider) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	p.Calls.Add(1)
	return players.Player{Slug: slug}, p.Err
}

func (p *countingProvider) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return &stats.Summary{}, nil
}

func (p *countingProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return []teams.Team{{Slug: "hades-tigers"}}, nil
}

func (p *countingProvider) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	p.Calls.Add(1)
	return teams.Team{Slug: slug}, p.Err
}

func (p *countingProvider) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	p.Calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	return &stats.Summary{}, nil
}
