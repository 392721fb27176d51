package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/TemirB/pos-core/internal/observability"
)

const (
	SourceCache = "cache"
	SourceDB    = "db"
)

// Loader fetches the current value of one key from the backend.
type Loader[V any] func(ctx context.Context) (V, error)

type Entry[V any] struct {
	Data      V
	FetchedAt time.Time
	TTL       time.Duration
}

// Fresh reports whether the entry may still be served at now.
func (e Entry[V]) Fresh(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL
}

type options struct {
	capacity int
	clock    clockwork.Clock
	logger   *zap.Logger
	metrics  observability.Metrics
}

type Option func(*options)

// WithCapacity bounds the number of keys kept; least recently used keys are dropped first.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m observability.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// Store is a keyed TTL cache with at most one in-flight load per key.
//
// Failed loads are never cached. An expired entry is not served by Get, but stays
// available to LastKnown until it is replaced, evicted or explicitly invalidated.
type Store[V any] struct {
	name    string
	ttl     time.Duration
	clock   clockwork.Clock
	logger  *zap.Logger
	metrics observability.Metrics

	mu      sync.Mutex
	entries *lru.Cache[string, Entry[V]]
	group   *singleflight.Group
	// A load is stored only if neither its key's generation nor the store epoch moved
	// while it ran. Invalidate bumps the key, InvalidateAll bumps the epoch.
	keyGen map[string]uint64
	epoch  uint64
}

type stamp struct{ epoch, key uint64 }

func NewStore[V any](name string, ttl time.Duration, opts ...Option) (*Store[V], error) {
	o := options{
		capacity: 128,
		clock:    clockwork.NewRealClock(),
		logger:   zap.NewNop(),
		metrics:  observability.NewNoop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := lru.New[string, Entry[V]](o.capacity)
	if err != nil {
		return nil, err
	}
	return &Store[V]{
		name:    name,
		ttl:     ttl,
		clock:   o.clock,
		logger:  o.logger,
		metrics: o.metrics,
		entries: entries,
		group:   &singleflight.Group{},
		keyGen:  make(map[string]uint64),
	}, nil
}

func (s *Store[V]) Name() string { return s.name }

// Get returns the fresh cached value for key, or joins / starts the single load for it.
// The load itself is detached from ctx: a caller that gives up gets ctx.Err(), the load
// still completes and fills the cache. A caller whose ctx is already done never starts one.
func (s *Store[V]) Get(ctx context.Context, key string, load Loader[V]) (V, error) {
	start := time.Now()

	s.mu.Lock()
	if e, ok := s.entries.Get(key); ok && e.Fresh(s.clock.Now()) {
		s.mu.Unlock()
		s.metrics.IncCacheHit(s.name)
		s.metrics.ObserveLookup(s.name, SourceCache, sinceMs(start))
		return e.Data, nil
	}
	group, st := s.group, stamp{epoch: s.epoch, key: s.keyGen[key]}
	s.mu.Unlock()

	// Nobody is waiting for the result.
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}

	s.metrics.IncCacheMiss(s.name)

	ch := group.DoChan(key, func() (any, error) {
		// A previous load may have landed between our miss and this call.
		if v, ok := s.fresh(key); ok {
			return v, nil
		}
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			s.logger.Warn("cache load failed",
				zap.String("resource", s.name),
				zap.String("key", key),
				zap.Error(err),
			)
			return nil, err
		}
		s.put(key, st, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		s.metrics.ObserveLookup(s.name, SourceDB, sinceMs(start))
		return v, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// LastKnown returns the last successfully loaded value for key, fresh or not.
func (s *Store[V]) LastKnown(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries.Peek(key)
	return e.Data, ok
}

// Entry exposes the raw entry for key.
func (s *Store[V]) Entry(key string) (Entry[V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Peek(key)
}

// Invalidate drops the entry and any in-flight load for key.
func (s *Store[V]) Invalidate(key string) {
	s.mu.Lock()
	s.keyGen[key]++
	s.entries.Remove(key)
	s.group.Forget(key)
	s.mu.Unlock()

	s.metrics.IncInvalidation(s.name)
	s.logger.Debug("cache key invalidated", zap.String("resource", s.name), zap.String("key", key))
}

// InvalidateAll drops every entry and detaches every in-flight load.
func (s *Store[V]) InvalidateAll() {
	s.mu.Lock()
	s.epoch++
	s.keyGen = make(map[string]uint64)
	s.entries.Purge()
	s.group = &singleflight.Group{}
	s.mu.Unlock()

	s.metrics.IncInvalidation(s.name)
	s.logger.Debug("cache invalidated", zap.String("resource", s.name))
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

func (s *Store[V]) fresh(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries.Peek(key); ok && e.Fresh(s.clock.Now()) {
		return e.Data, true
	}
	var zero V
	return zero, false
}

func (s *Store[V]) put(key string, st stamp, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.epoch != s.epoch || st.key != s.keyGen[key] {
		s.logger.Debug("dropping load that raced an invalidation",
			zap.String("resource", s.name),
			zap.String("key", key),
		)
		return
	}
	s.entries.Add(key, Entry[V]{Data: v, FetchedAt: s.clock.Now(), TTL: s.ttl})
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
