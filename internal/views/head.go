// Package views renders site documents as templ components.
package views

import (
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/pages"
	"github.com/preston-bernstein/blaseball-reference/internal/stattable"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

// Section names the top-level navigation entry a document belongs to.
type Section string

const (
	SectionHome    Section = ""
	SectionPlayers Section = "players"
	SectionTeams   Section = "teams"
	SectionAbout   Section = "about"
)

type navLink struct {
	section Section
	href    string
	label   string
}

var navLinks = []navLink{
	{SectionPlayers, "/players", "Players"},
	{SectionTeams, "/teams", "Teams"},
	{SectionAbout, "/about", "About"},
}

// Head carries document-level metadata.
type Head struct {
	Title   string
	Section Section
	// Refresh, when positive, asks the browser to reload after that many seconds.
	Refresh int
}

// LoadingRefreshSeconds is how soon a loading page reloads itself.
const LoadingRefreshSeconds = 2

func entityHead(page pages.Page) Head {
	head := Head{Title: page.Title, Section: SectionPlayers}
	if page.Kind == pages.KindTeam {
		head.Section = SectionTeams
	}
	if page.Status == pages.StatusLoading {
		head.Refresh = LoadingRefreshSeconds
	}
	return head
}

func sortDirection(h stattable.Header) string {
	if h.Descending {
		return "descending"
	}
	return "ascending"
}

func machineTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func readableTime(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}
