package providers

import (
	"context"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

// PlayerProvider fetches player documents from the statistics source.
type PlayerProvider interface {
	// FetchPlayers enumerates every known player.
	FetchPlayers(ctx context.Context) ([]players.Player, error)
	FetchPlayer(ctx context.Context, slug string) (players.Player, error)
	// FetchPlayerSummary returns the season summary of a player for a stat group.
	FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error)
}

// TeamProvider fetches team documents from the statistics source.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
	FetchTeam(ctx context.Context, slug string) (teams.Team, error)
	// FetchTeamSummary returns the per-player season rows of a team for a stat group.
	FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error)
}

// StatsProvider combines all provider capabilities.
type StatsProvider interface {
	PlayerProvider
	TeamProvider
}
