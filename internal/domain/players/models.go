package players

import "github.com/preston-bernstein/blaseball-reference/internal/domain"

// Position is the roster slot a player occupies; it decides which stat group applies.
type Position string

const (
	PositionLineup   Position = "lineup"
	PositionBench    Position = "bench"
	PositionRotation Position = "rotation"
	PositionBullpen  Position = "bullpen"
)

// Group is the stat category (and summary endpoint) used for a player.
type Group string

const (
	GroupBatting  Group = "batting"
	GroupPitching Group = "pitching"
)

var positionGroups = map[Position]Group{
	PositionLineup:   GroupBatting,
	PositionBench:    GroupBatting,
	PositionRotation: GroupPitching,
	PositionBullpen:  GroupPitching,
}

// GroupForPosition maps a position to its stat group. Unknown positions report false.
func GroupForPosition(p Position) (Group, bool) {
	g, ok := positionGroups[p]
	return g, ok
}

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	return g == GroupBatting || g == GroupPitching
}

// Label is the human description of the group's role on the field.
func (g Group) Label() string {
	switch g {
	case GroupPitching:
		return "Pitcher"
	case GroupBatting:
		return "Fielder"
	default:
		return ""
	}
}

// Player represents the normalized player details document.
type Player struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Name            string         `json:"name"`
	Aliases         []string       `json:"aliases"`
	Position        Position       `json:"position"`
	CurrentTeamName string         `json:"currentTeamName"`
	CurrentTeamSlug string         `json:"currentTeamSlug,omitempty"`
	DebutSeason     domain.FlexInt `json:"debutSeason"`
	DebutDay        domain.FlexInt `json:"debutDay"`
	LastGameSeason  domain.FlexInt `json:"lastGameSeason"`
	LastGameDay     domain.FlexInt `json:"lastGameDay"`
	IsIncinerated   bool           `json:"isIncinerated"`
	Bat             string         `json:"bat,omitempty"`
	Ritual          string         `json:"ritual,omitempty"`
}

// Group returns the player's stat group, or false when the position is not recognized.
func (p Player) Group() (Group, bool) {
	return GroupForPosition(p.Position)
}
