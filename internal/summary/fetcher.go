package summary

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

// PlayerData is a player's details plus the summary of the stat group their position maps to.
// Group is empty and Summary nil when the position is not recognized.
type PlayerData struct {
	Player  players.Player
	Group   players.Group
	Summary *stats.Summary
}

// TeamData is a team's details plus its batting and pitching summaries.
type TeamData struct {
	Team     teams.Team
	Batting  *stats.Summary
	Pitching *stats.Summary
}

// Fetcher combines the retrievals that make up one entity view. Any failed retrieval fails the
// whole result.
type Fetcher struct {
	provider providers.StatsProvider
}

func NewFetcher(provider providers.StatsProvider) *Fetcher {
	return &Fetcher{provider: provider}
}

// FetchPlayer loads a player's details and summary. When hint names a stat group the two retrievals
// run concurrently; otherwise the group is derived from the fetched details first. A hint that
// disagrees with the details is corrected by refetching the summary.
func (f *Fetcher) FetchPlayer(ctx context.Context, slug string, hint players.Group) (PlayerData, error) {
	if f == nil || f.provider == nil {
		return PlayerData{}, providers.ErrProviderUnavailable
	}

	var (
		player     players.Player
		summary    *stats.Summary
		summaryErr error
	)
	if hint.Valid() {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			player, err = f.provider.FetchPlayer(gctx, slug)
			return err
		})
		g.Go(func() error {
			// Kept aside: a stale hint is corrected below instead of failing the load.
			summary, summaryErr = f.provider.FetchPlayerSummary(gctx, hint, slug)
			return nil
		})
		if err := g.Wait(); err != nil {
			return PlayerData{}, err
		}
	} else {
		var err error
		if player, err = f.provider.FetchPlayer(ctx, slug); err != nil {
			return PlayerData{}, err
		}
	}

	group, ok := player.Group()
	if !ok {
		return PlayerData{Player: player}, nil
	}
	if group == hint {
		if summaryErr != nil {
			return PlayerData{}, summaryErr
		}
	} else {
		var err error
		if summary, err = f.provider.FetchPlayerSummary(ctx, group, slug); err != nil {
			return PlayerData{}, err
		}
	}
	return PlayerData{Player: player, Group: group, Summary: summary}, nil
}

// FetchTeam loads a team's details and both of its group summaries concurrently.
func (f *Fetcher) FetchTeam(ctx context.Context, slug string) (TeamData, error) {
	if f == nil || f.provider == nil {
		return TeamData{}, providers.ErrProviderUnavailable
	}

	var data TeamData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Team, err = f.provider.FetchTeam(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		data.Batting, err = f.provider.FetchTeamSummary(gctx, players.GroupBatting, slug)
		return err
	})
	g.Go(func() error {
		var err error
		data.Pitching, err = f.provider.FetchTeamSummary(gctx, players.GroupPitching, slug)
		return err
	})
	if err := g.Wait(); err != nil {
		return TeamData{}, err
	}
	return data, nil
}
