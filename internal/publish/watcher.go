// Package publish turns the backend's "last published" marker into cache invalidations.
// Each new marker value invalidates the menu exactly once, and the last value seen is
// persisted so a restart does not invalidate again for the same publish.
package publish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/observability"
	"github.com/TemirB/pos-core/internal/pkg/breaker"
)

//go:generate mockgen -source internal/publish/watcher.go -destination=internal/publish/watcher_mock_test.go -package=publish

// MarkerSource reads the marker from the backend. A zero time means nothing was published yet.
type MarkerSource interface {
	LastPublished(ctx context.Context) (time.Time, error)
}

// MarkerStore keeps the last marker this process acted on.
type MarkerStore interface {
	Load(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, ts time.Time) error
}

type Invalidator interface {
	InvalidateAll()
}

const DefaultInterval = 30 * time.Second

type Option func(*Watcher)

func WithClock(c clockwork.Clock) Option {
	return func(w *Watcher) {
		if c != nil {
			w.clock = c
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithBreaker guards Check. Without one the backend is polled unconditionally.
func WithBreaker(b *breaker.Breaker) Option {
	return func(w *Watcher) { w.breaker = b }
}

func WithMetrics(m observability.Metrics) Option {
	return func(w *Watcher) {
		if m != nil {
			w.metrics = m
		}
	}
}

type Watcher struct {
	source   MarkerSource
	store    MarkerStore
	target   Invalidator
	breaker  *breaker.Breaker
	clock    clockwork.Clock
	interval time.Duration
	logger   *zap.Logger
	metrics  observability.Metrics

	mu     sync.Mutex
	last   time.Time
	loaded bool
}

func NewWatcher(source MarkerSource, store MarkerStore, target Invalidator, logger *zap.Logger, opts ...Option) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Watcher{
		source:   source,
		store:    store,
		target:   target,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		logger:   logger,
		metrics:  observability.NewNoop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe records ts and invalidates when it is strictly newer than the last marker seen.
// It reports whether an invalidation happened.
func (w *Watcher) Observe(ctx context.Context, ts time.Time) (bool, error) {
	if ts.IsZero() {
		return false, nil
	}

	w.mu.Lock()
	if err := w.ensureLoaded(ctx); err != nil {
		w.mu.Unlock()
		return false, err
	}
	if !ts.After(w.last) {
		w.mu.Unlock()
		return false, nil
	}
	prev := w.last
	w.last = ts
	if err := w.store.Save(ctx, ts); err != nil {
		// The in-memory marker still moves; the worst case is one extra invalidation after a restart.
		w.logger.Warn("Can't persist publish marker", zap.Time("published_at", ts), zap.Error(err))
	}
	w.mu.Unlock()

	w.logger.Info("Menu published, invalidating caches",
		zap.Time("published_at", ts),
		zap.Time("previous", prev),
	)
	w.metrics.IncInvalidation("publish")
	w.target.InvalidateAll()
	return true, nil
}

// Check asks the backend for the marker and observes it.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	if w.breaker != nil {
		if err := w.breaker.Allow(); err != nil {
			return false, err
		}
	}

	ts, err := w.source.LastPublished(ctx)
	if err != nil {
		if w.breaker != nil {
			w.breaker.Failure()
		}
		return false, fmt.Errorf("read publish marker: %w", err)
	}
	if w.breaker != nil {
		w.breaker.Success()
	}
	return w.Observe(ctx, ts)
}

// Last returns the marker this watcher last acted on.
func (w *Watcher) Last(ctx context.Context) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ensureLoaded(ctx); err != nil {
		return time.Time{}, err
	}
	return w.last, nil
}

// Run checks once immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Publish watcher started", zap.Duration("interval", w.interval))
	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Publish watcher stopped")
			return nil
		case <-ticker.Chan():
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil {
		if errors.Is(err, breaker.ErrOpenState) {
			w.logger.Debug("Publish check skipped, breaker open")
			return
		}
		if ctx.Err() != nil {
			return
		}
		w.logger.Warn("Publish check failed", zap.Error(err))
	}
}

func (w *Watcher) ensureLoaded(ctx context.Context) error {
	if w.loaded {
		return nil
	}
	last, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load publish marker: %w", err)
	}
	w.last = last
	w.loaded = true
	return nil
}
