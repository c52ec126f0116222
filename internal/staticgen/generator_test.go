package staticgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
	"github.com/preston-bernstein/blaseball-reference/internal/providers/fixture"
	"github.com/preston-bernstein/blaseball-reference/internal/testutil"
)

func readPage(t *testing.T, root string, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{root}, parts...)...))
	if err != nil {
		t.Fatalf("read %v: %v", parts, err)
	}
	return string(data)
}

func TestGenerateFixtureLeague(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(fixture.New(), Config{OutDir: dir, Concurrency: 2})
	gen.now = testutil.NowAt(time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC))

	manifest, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wantPlayers := []string{"jaylen-hotdogfingers", "jessica-telephone", "nagomi-mcdaniel", "sutton-dreamy", "york-silk"}
	if diff := cmp.Diff(wantPlayers, manifest.Players); diff != "" {
		t.Fatalf("players mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"baltimore-crabs", "hades-tigers"}, manifest.Teams); diff != "" {
		t.Fatalf("teams mismatch (-want +got):\n%s", diff)
	}

	york := readPage(t, dir, "players", "york-silk", "index.html")
	for _, want := range []string{"<title>York Silk Stats - Blaseball-Reference.com</title>", "Standard Batting"} {
		if !strings.Contains(york, want) {
			t.Fatalf("expected york-silk page to contain %q", want)
		}
	}
	if !strings.Contains(readPage(t, dir, "teams", "hades-tigers", "index.html"), "Team Batting") {
		t.Fatalf("expected team page tables")
	}
	for _, parts := range [][]string{{"index.html"}, {"about", "index.html"}, {"404.html"}, {"players", "index.html"}, {"teams", "index.html"}} {
		readPage(t, dir, parts...)
	}

	onDisk, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if diff := cmp.Diff(manifest, onDisk); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSkipTeams(t *testing.T) {
	dir := t.TempDir()
	manifest, err := NewGenerator(fixture.New(), Config{OutDir: dir, SkipTeams: true}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(manifest.Teams) != 0 {
		t.Fatalf("expected no team pages, got %v", manifest.Teams)
	}
	if _, err := os.Stat(filepath.Join(dir, "teams")); !os.IsNotExist(err) {
		t.Fatalf("expected no teams directory, got %v", err)
	}
}

func TestGenerateReportsEntityFailures(t *testing.T) {
	stub := testutil.NewStubProvider()
	stub.AddPlayer(testutil.SamplePlayer("york-silk", players.PositionLineup), testutil.SampleSummary("hits", map[string]any{"1": 3}))
	// Listed but without a summary document.
	stub.AddPlayer(testutil.SamplePlayer("jessica-telephone", players.PositionRotation), nil)

	dir := t.TempDir()
	manifest, err := NewGenerator(stub, Config{OutDir: dir, SkipTeams: true}).Generate(context.Background())
	if err == nil {
		t.Fatal("expected joined entity error")
	}
	if !providers.IsNotFound(err) {
		t.Fatalf("expected the not-found cause to be preserved, got %v", err)
	}
	if diff := cmp.Diff([]string{"york-silk"}, manifest.Players); diff != "" {
		t.Fatalf("players mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"player/jessica-telephone"}, manifest.Failed); diff != "" {
		t.Fatalf("failed mismatch (-want +got):\n%s", diff)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "players", "jessica-telephone", "index.html")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no page for a failed player")
	}
}

func TestGenerateIndexFailureAborts(t *testing.T) {
	stub := testutil.NewStubProvider()
	boom := errors.New("teams down")
	stub.SetErr(providers.EndpointTeams, boom)

	_, err := NewGenerator(stub, Config{OutDir: t.TempDir()}).Generate(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected index error, got %v", err)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	if _, err := NewGenerator(nil, Config{OutDir: t.TempDir()}).Generate(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestEntityPathRejectsUnsafeSlugs(t *testing.T) {
	for _, slug := range []string{"", ".", "..", "a/b", `a\b`} {
		if _, err := entityPath("players", slug); err == nil {
			t.Fatalf("expected error for %q", slug)
		}
	}
}
