package teams

import (
	"testing"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

func TestTeamsService(t *testing.T) {
	svc := NewService()
	svc.ReplaceTeams([]teams.Team{
		{Slug: "hades-tigers", FullName: "Hades Tigers"},
		{Slug: "baltimore-crabs", FullName: "Baltimore Crabs"},
		{Slug: "hades-tigers", FullName: "Again"},
		{FullName: "No Slug"},
	})

	list := svc.Teams()
	if len(list) != 2 || list[0].Slug != "baltimore-crabs" {
		t.Fatalf("expected sorted unique teams, got %+v", list)
	}
	team, ok := svc.TeamBySlug("hades-tigers")
	if !ok || team.FullName != "Hades Tigers" {
		t.Fatalf("unexpected team %+v", team)
	}
	if _, ok := svc.TeamBySlug("nobody"); ok {
		t.Fatalf("expected unknown slug to be missing")
	}
	if !svc.Loaded() {
		t.Fatalf("expected service to be loaded")
	}
}
