package players

import (
	"testing"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
)

func TestPlayersService(t *testing.T) {
	svc := NewService()
	if svc.Loaded() {
		t.Fatalf("expected empty service not to be loaded")
	}

	svc.ReplacePlayers([]players.Player{
		{Slug: "york-silk", Name: "York Silk"},
		{Slug: "", Name: "Nameless"},
		{Slug: "jessica-telephone", Name: "Jessica Telephone"},
		{Slug: "york-silk", Name: "Duplicate"},
	})

	if !svc.Loaded() {
		t.Fatalf("expected service to be loaded")
	}
	list := svc.Players()
	if len(list) != 2 || list[0].Slug != "jessica-telephone" || list[1].Slug != "york-silk" {
		t.Fatalf("expected two players sorted by name, got %+v", list)
	}
	if got := svc.Slugs(); len(got) != 2 || got[1] != "york-silk" {
		t.Fatalf("unexpected slugs %v", got)
	}
	p, ok := svc.PlayerBySlug("york-silk")
	if !ok || p.Name != "York Silk" {
		t.Fatalf("expected first entry to win, got %+v", p)
	}
	if _, ok := svc.PlayerBySlug("nobody"); ok {
		t.Fatalf("expected unknown slug to be missing")
	}

	list[0].Name = "mutated"
	if again, _ := svc.PlayerBySlug("jessica-telephone"); again.Name != "Jessica Telephone" {
		t.Fatalf("expected Players to return a copy")
	}

	svc.ReplacePlayers(nil)
	if len(svc.Players()) != 0 || !svc.Loaded() {
		t.Fatalf("expected replace to clear players")
	}
}
