package testutil

import (
	"github.com/preston-bernstein/blaseball-reference/internal/domain"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

// SamplePlayer returns a minimal player with the provided slug and position.
func SamplePlayer(slug string, position players.Position) players.Player {
	return players.Player{
		ID:              "id-" + slug,
		Slug:            slug,
		Name:            "Player " + slug,
		Aliases:         []string{},
		Position:        position,
		CurrentTeamName: "Hades Tigers",
		CurrentTeamSlug: "hades-tigers",
		DebutSeason:     domain.FlexInt(1),
		DebutDay:        domain.FlexInt(0),
	}
}

// SampleTeam returns a minimal team with the provided slug.
func SampleTeam(slug string) teams.Team {
	return teams.Team{
		ID:        "id-" + slug,
		Slug:      slug,
		FullName:  "Team " + slug,
		Nickname:  slug,
		Location:  "Somewhere",
		Shorthand: "TT",
	}
}

// SampleSummary returns a summary with one row per regular season, each carrying field=value.
func SampleSummary(field string, bySeason map[string]any) *stats.Summary {
	seasons := make(stats.Seasons, len(bySeason))
	for season, v := range bySeason {
		seasons[season] = []stats.Row{{field: v}}
	}
	return &stats.Summary{Seasons: seasons, Postseasons: stats.Seasons{}}
}
