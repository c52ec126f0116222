package pages

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	appplayers "github.com/preston-bernstein/blaseball-reference/internal/app/players"
	appteams "github.com/preston-bernstein/blaseball-reference/internal/app/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
	"github.com/preston-bernstein/blaseball-reference/internal/summary"
)

const (
	minSweepInterval = time.Second
	viewPlayer       = string(KindPlayer)
	viewTeam         = string(KindTeam)
)

// RegistryConfig controls view lifetimes.
type RegistryConfig struct {
	RevalidateInterval time.Duration
	IdleTTL            time.Duration
	FirstRenderWait    time.Duration
	Logger             *slog.Logger
	Metrics            *metrics.Recorder
}

type view[T any] struct {
	watcher    *summary.Watcher[T]
	lastAccess time.Time
}

// Registry owns the player and team enumerations and one watcher per open entity view. A view is
// created on first request, revalidated in the background, and torn down after IdleTTL without a
// request or when the registry stops.
type Registry struct {
	provider providers.StatsProvider
	fetcher  *summary.Fetcher
	players  *appplayers.Service
	teams    *appteams.Service
	cfg      RegistryConfig
	now      func() time.Time

	mu          sync.Mutex
	playerViews map[string]*view[summary.PlayerData]
	teamViews   map[string]*view[summary.TeamData]
	stopped     bool

	base      context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRegistry constructs a Registry over provider. Call LoadIndex before serving and Start to
// enable background upkeep.
func NewRegistry(provider providers.StatsProvider, cfg RegistryConfig) *Registry {
	base, cancel := context.WithCancel(context.Background())
	return &Registry{
		provider:    provider,
		fetcher:     summary.NewFetcher(provider),
		players:     appplayers.NewService(),
		teams:       appteams.NewService(),
		cfg:         cfg,
		now:         time.Now,
		playerViews: make(map[string]*view[summary.PlayerData]),
		teamViews:   make(map[string]*view[summary.TeamData]),
		base:        base,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// LoadIndex fetches both enumerations and replaces the stored ones. Either failure fails the
// load and leaves the previous enumerations in place.
func (r *Registry) LoadIndex(ctx context.Context) error {
	if r.provider == nil {
		return providers.ErrProviderUnavailable
	}
	var (
		playerList []players.Player
		teamList   []teams.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playerList, err = r.provider.FetchPlayers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		teamList, err = r.provider.FetchTeams(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	r.players.ReplacePlayers(playerList)
	r.teams.ReplaceTeams(teamList)
	logging.Info(r.cfg.Logger, "index loaded",
		slog.Int("players", len(playerList)),
		slog.Int("teams", len(teamList)),
	)
	return nil
}

// Ready reports whether both enumerations have been loaded.
func (r *Registry) Ready() bool {
	return r.players.Loaded() && r.teams.Loaded()
}

// Players returns the player enumeration sorted by name.
func (r *Registry) Players() []players.Player {
	return r.players.Players()
}

// Teams returns the team enumeration sorted by display name.
func (r *Registry) Teams() []teams.Team {
	return r.teams.Teams()
}

// PlayerView returns the current state of slug's page, opening a view when none exists. Slugs missing
// from the enumeration are reported as unknown without contacting the provider. A view that has not
// finished its first load is waited on for up to FirstRenderWait.
func (r *Registry) PlayerView(ctx context.Context, slug string) PlayerView {
	entry, ok := r.players.PlayerBySlug(slug)
	if !ok {
		return PlayerView{Slug: slug}
	}
	hint, _ := entry.Group()
	w := acquire(r, r.playerViews, slug, func() *summary.Watcher[summary.PlayerData] {
		return summary.NewWatcher(func(ctx context.Context) (summary.PlayerData, error) {
			return r.fetcher.FetchPlayer(ctx, slug, hint)
		}, r.watcherConfig(viewPlayer, slug))
	})
	return PlayerView{Slug: slug, Known: true, Entry: entry, State: settle(ctx, w, r.cfg.FirstRenderWait)}
}

// TeamView is PlayerView for teams.
func (r *Registry) TeamView(ctx context.Context, slug string) TeamView {
	entry, ok := r.teams.TeamBySlug(slug)
	if !ok {
		return TeamView{Slug: slug}
	}
	w := acquire(r, r.teamViews, slug, func() *summary.Watcher[summary.TeamData] {
		return summary.NewWatcher(func(ctx context.Context) (summary.TeamData, error) {
			return r.fetcher.FetchTeam(ctx, slug)
		}, r.watcherConfig(viewTeam, slug))
	})
	return TeamView{Slug: slug, Known: true, Entry: entry, State: settle(ctx, w, r.cfg.FirstRenderWait)}
}

// ViewCount returns the number of open views.
func (r *Registry) ViewCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.playerViews) + len(r.teamViews)
}

// Start runs background upkeep until ctx ends or Stop is called: idle views are swept and the
// enumerations are reloaded every RevalidateInterval.
func (r *Registry) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		sweep := time.NewTicker(r.sweepInterval())
		index := time.NewTicker(r.revalidateInterval())
		go func() {
			defer sweep.Stop()
			defer index.Stop()
			for {
				select {
				case <-ctx.Done():
					r.Stop()
					return
				case <-r.done:
					return
				case <-sweep.C:
					r.Sweep()
				case <-index.C:
					if err := r.LoadIndex(r.base); err != nil && !errors.Is(err, context.Canceled) {
						logging.Warn(r.cfg.Logger, "index reload failed", slog.Any("err", err))
					}
				}
			}
		}()
	})
}

// Sweep tears down views that have not been requested for IdleTTL. It returns how many were removed.
func (r *Registry) Sweep() int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []func()
	stale = collectIdle(r.playerViews, cutoff, stale)
	stale = collectIdle(r.teamViews, cutoff, stale)
	r.mu.Unlock()

	for _, stop := range stale {
		stop()
	}
	if len(stale) > 0 {
		logging.Debug(r.cfg.Logger, "idle views swept", slog.Int(logging.FieldCount, len(stale)))
	}
	return len(stale)
}

// Stop tears down every view and stops background upkeep. Views requested afterwards never load.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		var all []func()
		all = collectIdle(r.playerViews, time.Time{}, all)
		all = collectIdle(r.teamViews, time.Time{}, all)
		r.mu.Unlock()

		close(r.done)
		r.cancel()
		for _, stop := range all {
			stop()
		}
	})
}

func (r *Registry) watcherConfig(kind, key string) summary.WatcherConfig {
	return summary.WatcherConfig{
		View:     kind,
		Key:      key,
		Interval: r.cfg.RevalidateInterval,
		Logger:   r.cfg.Logger,
		Metrics:  r.cfg.Metrics,
	}
}

func (r *Registry) revalidateInterval() time.Duration {
	if r.cfg.RevalidateInterval > 0 {
		return r.cfg.RevalidateInterval
	}
	return time.Minute
}

func (r *Registry) sweepInterval() time.Duration {
	interval := r.cfg.IdleTTL / 2
	if interval < minSweepInterval {
		return minSweepInterval
	}
	return interval
}

// acquire returns key's watcher, creating and starting it when missing. It returns nil after Stop.
func acquire[T any](r *Registry, views map[string]*view[T], key string, create func() *summary.Watcher[T]) *summary.Watcher[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return nil
	}
	if v, ok := views[key]; ok {
		v.lastAccess = r.now()
		return v.watcher
	}
	w := create()
	views[key] = &view[T]{watcher: w, lastAccess: r.now()}
	w.Start(r.base)
	return w
}

// collectIdle removes views last requested at or before cutoff and returns their stop funcs. A zero
// cutoff removes everything.
func collectIdle[T any](views map[string]*view[T], cutoff time.Time, out []func()) []func() {
	for key, v := range views {
		if !cutoff.IsZero() && v.lastAccess.After(cutoff) {
			continue
		}
		out = append(out, v.watcher.Stop)
		delete(views, key)
	}
	return out
}

func settle[T any](ctx context.Context, w *summary.Watcher[T], wait time.Duration) summary.State[T] {
	if w == nil {
		return summary.State[T]{Status: summary.StatusPending}
	}
	st := w.State()
	if st.Status != summary.StatusPending || wait <= 0 {
		return st
	}
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	return w.WaitSettled(waitCtx)
}
