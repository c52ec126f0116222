package providers

import (
	"net/url"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
)

// Endpoint kinds, used as metric and log labels.
const (
	EndpointPlayers       = "players"
	EndpointPlayer        = "player"
	EndpointPlayerSummary = "player_summary"
	EndpointTeams         = "teams"
	EndpointTeam          = "team"
	EndpointTeamSummary   = "team_summary"
)

// PlayersPath is the enumeration document of every player.
func PlayersPath() string {
	return "/players/players.json"
}

func PlayerDetailsPath(slug string) string {
	return "/players/" + url.PathEscape(slug) + "/details.json"
}

func PlayerSummaryPath(group players.Group, slug string) string {
	return "/" + url.PathEscape(string(group)) + "/" + url.PathEscape(slug) + "/summary.json"
}

// TeamsPath is the enumeration document of every team.
func TeamsPath() string {
	return "/teams/teams.json"
}

func TeamDetailsPath(slug string) string {
	return "/teams/" + url.PathEscape(slug) + "/details.json"
}

func TeamSummaryPath(group players.Group, slug string) string {
	return "/teams/" + url.PathEscape(slug) + "/" + url.PathEscape(string(group)) + ".json"
}
