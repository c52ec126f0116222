// Package staticgen prerenders the site into a directory of HTML files that any static file
// server can host.
package staticgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/pages"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
	"github.com/preston-bernstein/blaseball-reference/internal/summary"
	"github.com/preston-bernstein/blaseball-reference/internal/views"
)

const defaultConcurrency = 4

// Config controls a prerender run.
type Config struct {
	OutDir      string
	Concurrency int
	SkipTeams   bool
	Logger      *slog.Logger
}

// Generator renders every page reachable from the player and team enumerations.
type Generator struct {
	provider providers.StatsProvider
	fetcher  *summary.Fetcher
	composer *pages.Composer
	writer   *Writer
	cfg      Config
	now      func() time.Time
}

// NewGenerator constructs a Generator writing below cfg.OutDir.
func NewGenerator(provider providers.StatsProvider, cfg Config) *Generator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Generator{
		provider: provider,
		fetcher:  summary.NewFetcher(provider),
		composer: pages.NewComposer(nil),
		writer:   NewWriter(cfg.OutDir),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Generate writes the directory pages, one page per entity and the manifest. An entity whose data
// cannot be loaded is skipped and reported; the returned error joins every such failure. Failing to
// load the enumerations or to write a file aborts the run.
func (g *Generator) Generate(ctx context.Context) (Manifest, error) {
	if g.provider == nil {
		return Manifest{}, providers.ErrProviderUnavailable
	}
	manifest := newManifest(g.now())

	playerList, teamList, err := g.loadIndex(ctx)
	if err != nil {
		return manifest, fmt.Errorf("load index: %w", err)
	}

	if err := g.writeStatic(playerList, teamList); err != nil {
		return manifest, err
	}

	var (
		mu       sync.Mutex
		failures []error
	)
	record := func(kind, slug string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			switch kind {
			case string(pages.KindPlayer):
				manifest.Players = append(manifest.Players, slug)
			default:
				manifest.Teams = append(manifest.Teams, slug)
			}
			return
		}
		manifest.Failed = append(manifest.Failed, kind+"/"+slug)
		failures = append(failures, fmt.Errorf("%s %s: %w", kind, slug, err))
		logging.Warn(g.cfg.Logger, "prerender failed",
			slog.String(logging.FieldView, kind),
			slog.String(logging.FieldSlug, slug),
			slog.Any("err", err),
		)
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Concurrency)
	for _, p := range playerList {
		eg.Go(func() error {
			err := g.renderPlayer(egctx, p)
			if isWriteError(err) {
				return err
			}
			record(string(pages.KindPlayer), p.Slug, err)
			return nil
		})
	}
	if !g.cfg.SkipTeams {
		for _, t := range teamList {
			eg.Go(func() error {
				err := g.renderTeam(egctx, t)
				if isWriteError(err) {
					return err
				}
				record(string(pages.KindTeam), t.Slug, err)
				return nil
			})
		}
	}
	// Only a write failure stops the pool; entity failures were recorded above.
	if err := eg.Wait(); err != nil {
		return manifest, err
	}

	if err := writeManifest(g.writer, manifest); err != nil {
		return manifest, fmt.Errorf("write manifest: %w", err)
	}
	manifest.sort()
	logging.Info(g.cfg.Logger, "prerender complete",
		slog.Int("players", len(manifest.Players)),
		slog.Int("teams", len(manifest.Teams)),
		slog.Int("failed", len(manifest.Failed)),
	)
	return manifest, errors.Join(failures...)
}

func (g *Generator) loadIndex(ctx context.Context) ([]players.Player, []teams.Team, error) {
	var (
		playerList []players.Player
		teamList   []teams.Team
	)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		playerList, err = g.provider.FetchPlayers(egctx)
		return err
	})
	eg.Go(func() error {
		var err error
		teamList, err = g.provider.FetchTeams(egctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return playerList, teamList, nil
}

func (g *Generator) writeStatic(playerList []players.Player, teamList []teams.Team) error {
	static := []struct {
		rel string
		c   templ.Component
	}{
		{PagePath("/"), views.Home()},
		{PagePath("/about"), views.About()},
		{"404.html", views.NotFound()},
		{PagePath("/players"), views.Players(playerList)},
	}
	if !g.cfg.SkipTeams {
		static = append(static, struct {
			rel string
			c   templ.Component
		}{PagePath("/teams"), views.Teams(teamList)})
	}
	for _, s := range static {
		if err := g.render(s.rel, s.c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderPlayer(ctx context.Context, p players.Player) error {
	rel, err := entityPath("players", p.Slug)
	if err != nil {
		return err
	}
	hint, _ := p.Group()
	data, err := g.fetcher.FetchPlayer(ctx, p.Slug, hint)
	if err != nil {
		return err
	}
	view := pages.PlayerView{
		Slug:  p.Slug,
		Known: true,
		Entry: p,
		State: readyState(&data, g.now()),
	}
	return g.render(rel, views.Entity(g.composer.ComposePlayer(view, pages.Query{})))
}

func (g *Generator) renderTeam(ctx context.Context, t teams.Team) error {
	rel, err := entityPath("teams", t.Slug)
	if err != nil {
		return err
	}
	data, err := g.fetcher.FetchTeam(ctx, t.Slug)
	if err != nil {
		return err
	}
	view := pages.TeamView{
		Slug:  t.Slug,
		Known: true,
		Entry: t,
		State: readyState(&data, g.now()),
	}
	return g.render(rel, views.Entity(g.composer.ComposeTeam(view, pages.Query{})))
}

func (g *Generator) render(rel string, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		return fmt.Errorf("render %s: %w", rel, err)
	}
	if err := g.writer.Write(rel, buf.Bytes()); err != nil {
		return &writeError{path: rel, err: err}
	}
	return nil
}

func readyState[T any](data *T, now time.Time) summary.State[T] {
	return summary.State[T]{Status: summary.StatusReady, Data: data, UpdatedAt: now, LastAttempt: now}
}

// entityPath rejects slugs that cannot name a single directory.
func entityPath(dir, slug string) (string, error) {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", fmt.Errorf("unusable slug %q", slug)
	}
	return filepath.Join(dir, slug, "index.html"), nil
}

type writeError struct {
	path string
	err  error
}

func (e *writeError) Error() string { return "write " + e.path + ": " + e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

func isWriteError(err error) bool {
	var we *writeError
	return errors.As(err, &we)
}
