package fixture

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

func TestEmbeddedLeagueIsConsistent(t *testing.T) {
	p := New()
	ctx := context.Background()

	list, err := p.FetchPlayers(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 players, got %d", len(list))
	}

	for _, entry := range list {
		player, err := p.FetchPlayer(ctx, entry.Slug)
		if err != nil {
			t.Fatalf("%s: expected details, got %v", entry.Slug, err)
		}
		if player.Slug != entry.Slug {
			t.Fatalf("%s: details slug mismatch %s", entry.Slug, player.Slug)
		}
		group, ok := player.Group()
		if !ok {
			continue
		}
		summary, err := p.FetchPlayerSummary(ctx, group, entry.Slug)
		if err != nil {
			t.Fatalf("%s: expected %s summary, got %v", entry.Slug, group, err)
		}
		if _, ok := summary.Period(false); !ok {
			t.Fatalf("%s: expected regular seasons", entry.Slug)
		}
	}

	teamList, err := p.FetchTeams(ctx)
	if err != nil || len(teamList) != 2 {
		t.Fatalf("expected 2 teams, got %d err=%v", len(teamList), err)
	}
	for _, entry := range teamList {
		if _, err := p.FetchTeam(ctx, entry.Slug); err != nil {
			t.Fatalf("%s: expected details, got %v", entry.Slug, err)
		}
		for _, group := range []players.Group{players.GroupBatting, players.GroupPitching} {
			if _, err := p.FetchTeamSummary(ctx, group, entry.Slug); err != nil {
				t.Fatalf("%s: expected %s summary, got %v", entry.Slug, group, err)
			}
		}
	}
}

func TestEmbeddedLeagueCoversEdgeCases(t *testing.T) {
	p := New()
	ctx := context.Background()

	shadow, err := p.FetchPlayer(ctx, "nagomi-mcdaniel")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := shadow.Group(); ok {
		t.Fatalf("expected unrecognized position, got %s", shadow.Position)
	}

	burned, _ := p.FetchPlayer(ctx, "jaylen-hotdogfingers")
	if !burned.IsIncinerated || burned.LastGameSeason.Int() != 3 {
		t.Fatalf("expected incinerated player with last game, got %+v", burned)
	}

	jess, _ := p.FetchPlayer(ctx, "jessica-telephone")
	if jess.DebutSeason.Int() != 1 || jess.DebutDay.Int() != 3 {
		t.Fatalf("expected string season fields to decode, got %+v", jess)
	}
}

func TestMissingDocumentIsNotFound(t *testing.T) {
	p := New()
	_, err := p.FetchPlayer(context.Background(), "nobody")
	if !providers.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = p.FetchPlayerSummary(context.Background(), players.GroupPitching, "york-silk")
	if !providers.IsNotFound(err) {
		t.Fatalf("expected missing group summary to be not found, got %v", err)
	}
}

func TestReadFromCustomFS(t *testing.T) {
	files := fstest.MapFS{
		"teams/teams.json":            {Data: []byte(`[{"slug": "a"}]`)},
		"players/broken/details.json": {Data: []byte(`{not json`)},
	}
	p := NewFromFS(files)

	list, err := p.FetchTeams(context.Background())
	if err != nil || len(list) != 1 || list[0].Slug != "a" {
		t.Fatalf("unexpected teams %+v err=%v", list, err)
	}
	_, err = p.FetchPlayer(context.Background(), "broken")
	if err == nil || providers.IsNotFound(err) {
		t.Fatalf("expected decode failure, got %v", err)
	}
}

func TestReadRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchTeams(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
