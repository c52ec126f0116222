package views

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/pages"
	"github.com/preston-bernstein/blaseball-reference/internal/stattable"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func readyPage() pages.Page {
	set, _ := stattable.DefaultCatalog().Set(stattable.SetBatting)
	return pages.Page{
		Kind:    pages.KindPlayer,
		Status:  pages.StatusReady,
		Slug:    "york-silk",
		Path:    "/players/york-silk",
		Title:   "York Silk Stats - Blaseball-Reference.com",
		Heading: "York Silk",
		Facts: []pages.Fact{
			{Label: "Team", Value: "Hades Tigers", Href: "/teams/hades-tigers"},
			{Label: "Debut", Value: "Season 2, Day 1*"},
		},
		Seasons: []pages.SeasonOption{
			{Key: "1", Label: "Season 2"},
			{Key: "2", Label: "Season 3", Selected: true},
		},
		Sections: []pages.Section{{
			Heading: "Standard Batting",
			Table: &stattable.Table{
				Set:     set.Name,
				Season:  "2",
				Headers: []stattable.Header{{Column: set.Columns[0]}},
				Rows:    [][]stattable.Cell{{{Text: "3", Numeric: true}}},
			},
		}},
		Footnote:  pages.Footnote,
		UpdatedAt: time.Date(2020, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEntityReadyPage(t *testing.T) {
	body := render(t, Entity(readyPage()))
	assertContains(t, body,
		"<title>York Silk Stats - Blaseball-Reference.com</title>",
		`<meta property="og:title" content="York Silk Stats - Blaseball-Reference.com">`,
		"<h1>York Silk</h1>",
		`<a href="/teams/hades-tigers">Hades Tigers</a>`,
		"Season 2, Day 1*",
		`<a class="season" href="/players/york-silk?season=1">Season 2</a>`,
		`aria-current="true">Season 3</span>`,
		"<h2>Standard Batting</h2>",
		`<td class="numeric">3</td>`,
		pages.Footnote,
		`<a class="link active" href="/players">Players</a>`,
	)
	if strings.Contains(body, "http-equiv") {
		t.Fatal("ready page should not auto-refresh")
	}
}

func TestEntityLoadingRefreshes(t *testing.T) {
	page := pages.Page{Kind: pages.KindTeam, Status: pages.StatusLoading, Title: "Hades Tigers Stats - Blaseball-Reference.com"}
	body := render(t, Entity(page))
	assertContains(t, body, `<meta http-equiv="refresh" content="2">`, "Loading...", `<a class="link active" href="/teams">Teams</a>`)
}

func TestEntityErrorShowsMessage(t *testing.T) {
	page := pages.Page{Kind: pages.KindPlayer, Status: pages.StatusError, Message: "Sorry, we're currently having a siesta"}
	body := render(t, Entity(page))
	assertContains(t, body, `<p class="error">Sorry, we&#39;re currently having a siesta</p>`)
	if strings.Contains(body, "<table") {
		t.Fatal("error page should not render tables")
	}
}

func TestEntityEscapesText(t *testing.T) {
	page := readyPage()
	page.Heading = "<script>alert(1)</script>"
	body := render(t, Entity(page))
	if strings.Contains(body, "<script>") {
		t.Fatalf("expected heading escaped, got:\n%s", body)
	}
}

func TestDirectories(t *testing.T) {
	body := render(t, Players([]players.Player{{Slug: "york-silk", Name: "York Silk", CurrentTeamName: "Hades Tigers"}}))
	assertContains(t, body, `<a href="/players/york-silk">York Silk</a>`, "Hades Tigers")

	body = render(t, Teams([]teams.Team{{Slug: "hades-tigers", FullName: "Hades Tigers", Emoji: "0x1F405"}}))
	assertContains(t, body, `<a href="/teams/hades-tigers">Hades Tigers</a>`, "\U0001F405")

	body = render(t, Players(nil))
	assertContains(t, body, "No players are available yet.")
}

func TestStaticPages(t *testing.T) {
	assertContains(t, render(t, About()), "<title>About - Blaseball-Reference.com</title>")
	assertContains(t, render(t, NotFound()), "<title>Page Not Found - Blaseball-Reference.com</title>", "<h1>Page Not Found</h1>")
	assertContains(t, render(t, Home()), `<a href="/players">player</a>`)
}

func TestStaticAssets(t *testing.T) {
	data, err := fs.ReadFile(Static(), "site.css")
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !bytes.Contains(data, []byte(".stat-table")) {
		t.Fatal("expected stat table styles")
	}
}

func TestLayoutWrapsChildren(t *testing.T) {
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), templ.Raw(`<p id="child">hi</p>`))
	if err := Layout(Head{Title: "Teams", Section: SectionTeams}).Render(ctx, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, buf.String(),
		"<!doctype html>",
		`<main id="content" class="container"><p id="child">hi</p></main>`,
		`<a class="link" href="/players">Players</a>`,
		`<a class="link active" href="/teams">Teams</a>`,
	)
}

func TestEntityIncineratedHeading(t *testing.T) {
	page := readyPage()
	page.Emoji = "\U0001F405"
	page.Incinerated = true
	body := render(t, Entity(page))
	assertContains(t, body, `<h1><span class="emoji">`+"\U0001F405"+`</span> York Silk <span class="incinerated" title="Incinerated">`)
}

func TestStatTableMarksSortedColumn(t *testing.T) {
	page := readyPage()
	page.Sections[0].Table.Headers[0].Sorted = true
	page.Sections[0].Table.Headers[0].Descending = true
	body := render(t, Entity(page))
	assertContains(t, body, `aria-sort="descending"`, `scope="col"><a href="/players/york-silk?`)
}
