package summary

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
)

const defaultInterval = 60 * time.Second

// LoadFunc produces a fresh copy of a view's data.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// WatcherConfig names and schedules a watcher.
type WatcherConfig struct {
	// View is the view kind used as the metric label ("player", "team").
	View string
	// Key identifies the entity in logs.
	Key      string
	Interval time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Watcher loads a view's data once on Start and then again on every interval until stopped.
type Watcher[T any] struct {
	load     LoadFunc[T]
	view     string
	key      string
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	cancel   context.CancelFunc

	settled    chan struct{}
	settleOnce sync.Once

	mu         sync.RWMutex
	state      State[T]
	generation uint64
	stopped    bool
}

// NewWatcher constructs a Watcher with sane defaults.
func NewWatcher[T any](load LoadFunc[T], cfg WatcherConfig) *Watcher[T] {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher[T]{
		load:     load,
		view:     cfg.View,
		key:      cfg.Key,
		interval: interval,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		now:      time.Now,
		done:     make(chan struct{}),
		settled:  make(chan struct{}),
		state:    State[T]{Status: StatusPending},
	}
}

// Start issues the initial load and schedules revalidation until ctx ends or Stop is called.
func (w *Watcher[T]) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.ticker = time.NewTicker(w.interval)
	w.startMu.Unlock()

	go func() {
		defer cancel()
		w.logDebug("view watcher started", slog.Int64(logging.FieldDurationMS, w.interval.Milliseconds()))
		w.loadOnce(loopCtx)

		for {
			select {
			case <-loopCtx.Done():
				w.stopTicker()
				w.logDebug("view watcher stopped")
				return
			case <-w.done:
				w.stopTicker()
				w.logDebug("view watcher stopped")
				return
			case <-w.ticker.C:
				w.loadOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the schedule and any in-flight load. Results that arrive afterwards are discarded.
func (w *Watcher[T]) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()

		close(w.done)
		w.startMu.Lock()
		cancel := w.cancel
		w.startMu.Unlock()
		if cancel != nil {
			cancel()
		}
		w.stopTicker()
	})
}

// Refresh runs one load immediately and returns the resulting state.
func (w *Watcher[T]) Refresh(ctx context.Context) State[T] {
	w.loadOnce(ctx)
	return w.State()
}

// State returns a copy of the current state.
func (w *Watcher[T]) State() State[T] {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// WaitSettled blocks until the first load has been applied, the watcher stops or ctx ends, then
// returns the current state.
func (w *Watcher[T]) WaitSettled(ctx context.Context) State[T] {
	select {
	case <-w.settled:
	case <-w.done:
	case <-ctx.Done():
	}
	return w.State()
}

func (w *Watcher[T]) loadOnce(ctx context.Context) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.generation++
	gen := w.generation
	w.state.LastAttempt = w.now()
	w.mu.Unlock()

	start := w.now()
	data, err := w.load(ctx)
	elapsed := w.now().Sub(start)

	if !w.apply(gen, data, err) {
		w.logDebug("view load discarded", slog.Uint64("generation", gen))
		return
	}
	w.metrics.RecordRevalidation(w.view, elapsed, err)
	defer w.settleOnce.Do(func() { close(w.settled) })
	if err != nil {
		w.logWarn("view load failed", slog.Any("err", err), slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
		return
	}
	w.logDebug("view refreshed", slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
}

// apply stores a load result unless it was superseded or the watcher has stopped.
func (w *Watcher[T]) apply(gen uint64, data T, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || gen != w.generation {
		return false
	}

	if err != nil {
		w.state.Err = err
		w.state.ConsecutiveFailures++
	} else {
		w.state.Data = &data
		w.state.Err = nil
		w.state.ConsecutiveFailures = 0
		w.state.UpdatedAt = w.now()
	}
	w.state.Status = w.state.derive()
	return true
}

func (w *Watcher[T]) stopTicker() {
	w.startMu.Lock()
	defer w.startMu.Unlock()
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Watcher[T]) attrs(args []any) []any {
	return append(args, slog.String(logging.FieldView, w.view), slog.String(logging.FieldSlug, w.key))
}

func (w *Watcher[T]) logDebug(msg string, args ...any) {
	logging.Debug(w.logger, msg, w.attrs(args)...)
}

func (w *Watcher[T]) logWarn(msg string, args ...any) {
	logging.Warn(w.logger, msg, w.attrs(args)...)
}
