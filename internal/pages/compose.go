package pages

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/blaseball-reference/internal/domain"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/stattable"
	"github.com/preston-bernstein/blaseball-reference/internal/summary"
)

// earliestRecordedSeason is the display number of the first season with recorded play data.
const earliestRecordedSeason = 2

// PlayerView is everything the registry knows about one player page.
type PlayerView struct {
	Slug  string
	Known bool
	// Entry is the enumeration record, used for the title while details load.
	Entry players.Player
	State summary.State[summary.PlayerData]
}

// TeamView is everything the registry knows about one team page.
type TeamView struct {
	Slug  string
	Known bool
	Entry teams.Team
	State summary.State[summary.TeamData]
}

// Composer builds pages from view state using a column catalog.
type Composer struct {
	catalog *stattable.Catalog
}

// NewComposer returns a composer over catalog, or the embedded catalog when nil.
func NewComposer(catalog *stattable.Catalog) *Composer {
	if catalog == nil {
		catalog = stattable.DefaultCatalog()
	}
	return &Composer{catalog: catalog}
}

func viewStatus(known bool, status summary.Status) ViewStatus {
	switch {
	case !known:
		return StatusNotFound
	case status == summary.StatusError:
		return StatusError
	case status == summary.StatusReady:
		return StatusReady
	default:
		return StatusLoading
	}
}

// NotFoundPage is the document for an unknown route or entity.
func NotFoundPage(path string) Page {
	return Page{Status: StatusNotFound, Path: path, Title: SimpleTitle("Page Not Found")}
}

// ComposePlayer derives the player document. Only a Ready page carries facts and tables.
func (c *Composer) ComposePlayer(v PlayerView, q Query) Page {
	path := stattable.PlayerHref(v.Slug)
	status := viewStatus(v.Known, v.State.Status)
	if status == StatusNotFound {
		page := NotFoundPage(path)
		page.Kind, page.Slug = KindPlayer, v.Slug
		return page
	}

	name := v.Entry.Name
	if name == "" {
		name = v.Slug
	}
	page := Page{
		Kind:      KindPlayer,
		Status:    status,
		Slug:      v.Slug,
		Path:      path,
		Title:     PageTitle(name),
		Query:     q,
		UpdatedAt: v.State.UpdatedAt,
	}

	switch status {
	case StatusError:
		page.Message = playerSiesta
		return page
	case StatusLoading:
		return page
	}

	data := v.State.Data
	player := data.Player
	page.Title = PageTitle(player.Name)
	page.Heading = player.Name
	page.Incinerated = player.IsIncinerated
	page.Facts = playerFacts(player)
	page.Footnote = Footnote

	if data.Summary == nil {
		return page
	}
	setName, ok := stattable.PlayerSetName(data.Group)
	if !ok {
		return page
	}
	set, ok := c.catalog.Set(setName)
	if !ok {
		return page
	}

	label := groupLabel(data.Group)
	regular, ok := stattable.Build(set, data.Summary, tableOptions(q, false))
	if ok {
		page.Sections = append(page.Sections, Section{Heading: "Standard " + label, Table: regular})
		page.Seasons = seasonOptions(data.Summary.Seasons, regular.Season)
	}
	if data.Summary.HasPostseason() {
		if post, ok := stattable.Build(set, data.Summary, tableOptions(q, true)); ok {
			page.Sections = append(page.Sections, Section{Heading: "Postseason " + label, Table: post})
		}
	}
	return page
}

// ComposeTeam derives the team document: both group tables for the selected season and their
// postseason variants when present.
func (c *Composer) ComposeTeam(v TeamView, q Query) Page {
	path := stattable.TeamHref(v.Slug)
	status := viewStatus(v.Known, v.State.Status)
	if status == StatusNotFound {
		page := NotFoundPage(path)
		page.Kind, page.Slug = KindTeam, v.Slug
		return page
	}

	name := v.Entry.DisplayName()
	if name == "" {
		name = v.Slug
	}
	page := Page{
		Kind:      KindTeam,
		Status:    status,
		Slug:      v.Slug,
		Path:      path,
		Title:     PageTitle(name),
		Query:     q,
		UpdatedAt: v.State.UpdatedAt,
	}

	switch status {
	case StatusError:
		page.Message = teamSiesta
		return page
	case StatusLoading:
		return page
	}

	data := v.State.Data
	team := data.Team
	page.Title = PageTitle(team.DisplayName())
	page.Heading = team.DisplayName()
	page.Emoji = team.Glyph()
	page.Facts = teamFacts(team)
	page.Footnote = Footnote

	all := mergeSeasons(data.Batting, data.Pitching)
	selected := q.Season
	if selected == "" {
		selected, _ = all.Latest()
	}
	page.Seasons = seasonOptions(all, selected)

	regular := q
	regular.Season = selected
	for _, group := range []players.Group{players.GroupBatting, players.GroupPitching} {
		summ := data.Batting
		if group == players.GroupPitching {
			summ = data.Pitching
		}
		setName, _ := stattable.TeamSetName(group)
		set, ok := c.catalog.Set(setName)
		if !ok {
			continue
		}
		if table, ok := stattable.Build(set, summ, tableOptions(regular, false)); ok {
			page.Sections = append(page.Sections, Section{Heading: "Team " + groupLabel(group), Table: table})
		}
		if summ.HasPostseason() {
			if table, ok := stattable.Build(set, summ, tableOptions(q, true)); ok {
				page.Sections = append(page.Sections, Section{Heading: "Postseason " + groupLabel(group), Table: table})
			}
		}
	}
	return page
}

func groupLabel(g players.Group) string {
	switch g {
	case players.GroupPitching:
		return "Pitching"
	default:
		return "Batting"
	}
}

func playerFacts(p players.Player) []Fact {
	var facts []Fact
	if len(p.Aliases) > 0 {
		facts = append(facts, Fact{Label: "Aliases", Value: strings.Join(p.Aliases, ", ")})
	}

	team := Fact{Label: "Team", Value: p.CurrentTeamName}
	if p.CurrentTeamSlug != "" {
		team.Href = stattable.TeamHref(p.CurrentTeamSlug)
	}
	facts = append(facts, team)

	if group, ok := p.Group(); ok {
		facts = append(facts, Fact{Label: "Position", Value: group.Label()})
	}

	debut := seasonDay(p.DebutSeason, p.DebutDay)
	if p.DebutSeason.Int()+1 == earliestRecordedSeason {
		debut += "*"
	}
	facts = append(facts, Fact{Label: "Debut", Value: debut})

	if p.IsIncinerated {
		facts = append(facts, Fact{Label: "Last Game", Value: seasonDay(p.LastGameSeason, p.LastGameDay)})
	}
	if p.Bat != "" {
		facts = append(facts, Fact{Label: "Bat", Value: p.Bat})
	}
	if p.Ritual != "" {
		facts = append(facts, Fact{Label: "Ritual", Value: p.Ritual})
	}
	return facts
}

func teamFacts(t teams.Team) []Fact {
	var facts []Fact
	if t.Location != "" {
		facts = append(facts, Fact{Label: "Location", Value: t.Location})
	}
	if t.Nickname != "" {
		facts = append(facts, Fact{Label: "Nickname", Value: t.Nickname})
	}
	if t.Shorthand != "" {
		facts = append(facts, Fact{Label: "Abbreviation", Value: t.Shorthand})
	}
	return facts
}

// seasonDay renders zero-based season and day numbers the way readers count them.
func seasonDay(season, day domain.FlexInt) string {
	return "Season " + strconv.Itoa(season.Int()+1) + ", Day " + strconv.Itoa(day.Int()+1)
}

func mergeSeasons(summaries ...*stats.Summary) stats.Seasons {
	out := stats.Seasons{}
	for _, s := range summaries {
		seasons, ok := s.Period(false)
		if !ok {
			continue
		}
		for k := range seasons {
			out[k] = nil
		}
	}
	return out
}
