// Package pages turns view state into the documents served for player, team and index routes.
package pages

import (
	"net/url"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/stattable"
)

// ViewStatus is the composer's view of a page.
type ViewStatus string

const (
	StatusNotFound ViewStatus = "not_found"
	StatusLoading  ViewStatus = "loading"
	StatusError    ViewStatus = "error"
	StatusReady    ViewStatus = "ready"
)

// Kind names the entity a page describes.
type Kind string

const (
	KindPlayer Kind = "player"
	KindTeam   Kind = "team"
)

const (
	siteName = "Blaseball-Reference.com"
	// Footnote explains the asterisk on early-season facts.
	Footnote = "* Based on incomplete or earliest recorded data"

	playerSiesta = "Sorry, we're currently having a siesta and couldn't load player information."
	teamSiesta   = "Sorry, we're currently having a siesta and couldn't load team information."
)

// Query holds the display options a reader can choose through the URL.
type Query struct {
	Season     string `json:"season,omitempty"`
	Sort       string `json:"sort,omitempty"`
	Descending bool   `json:"descending,omitempty"`
}

// Fact is one labelled line of biographical or status information.
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Href  string `json:"href,omitempty"`
}

// Section is a headed stat table.
type Section struct {
	Heading string           `json:"heading"`
	Table   *stattable.Table `json:"table"`
}

// SeasonOption is one entry of the season picker.
type SeasonOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Page is a composed document, independent of its HTML rendering. It doubles as the JSON props of
// the page.
type Page struct {
	Kind        Kind           `json:"kind"`
	Status      ViewStatus     `json:"status"`
	Slug        string         `json:"slug"`
	Path        string         `json:"path"`
	Title       string         `json:"title"`
	Heading     string         `json:"heading,omitempty"`
	Emoji       string         `json:"emoji,omitempty"`
	Incinerated bool           `json:"incinerated,omitempty"`
	Facts       []Fact         `json:"facts,omitempty"`
	Seasons     []SeasonOption `json:"seasons,omitempty"`
	Sections    []Section      `json:"sections,omitempty"`
	Footnote    string         `json:"footnote,omitempty"`
	Message     string         `json:"message,omitempty"`
	Query       Query          `json:"query"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

// PageTitle formats the document title used for both <title> and og:title.
func PageTitle(name string) string {
	return name + " Stats - " + siteName
}

// SimpleTitle formats the title of pages that are not about one entity.
func SimpleTitle(name string) string {
	return name + " - " + siteName
}

// SortHref links to this page sorted by key, toggling direction when key is already the sort.
func (p Page) SortHref(h stattable.Header) string {
	q := p.Query
	q.Sort = h.Key
	// Numbers read best largest-first on the first click.
	q.Descending = h.Numeric()
	if h.Sorted {
		q.Descending = !h.Descending
	}
	return p.Path + encodeQuery(q)
}

// SeasonHref links to this page showing season, keeping the current sort.
func (p Page) SeasonHref(season string) string {
	q := p.Query
	q.Season = season
	return p.Path + encodeQuery(q)
}

func encodeQuery(q Query) string {
	v := url.Values{}
	if q.Season != "" {
		v.Set("season", q.Season)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		if q.Descending {
			v.Set("dir", "desc")
		} else {
			v.Set("dir", "asc")
		}
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func seasonOptions(seasons stats.Seasons, selected string) []SeasonOption {
	keys := seasons.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]SeasonOption, 0, len(keys))
	for _, k := range keys {
		out = append(out, SeasonOption{Key: k, Label: "Season " + stats.SeasonLabel(k), Selected: k == selected})
	}
	return out
}

func tableOptions(q Query, postseason bool) stattable.Options {
	return stattable.Options{
		Season:     q.Season,
		Postseason: postseason,
		SortKey:    q.Sort,
		Descending: q.Descending,
	}
}
