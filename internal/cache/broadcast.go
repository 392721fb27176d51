package cache

import (
	"container/list"
	"sync"

	"go.uber.org/zap"
)

// Broadcaster fans an invalidation signal out to subscribers.
// Listeners run synchronously on the notifying goroutine and must not block.
type Broadcaster struct {
	mu        sync.Mutex
	listeners *list.List
	logger    *zap.Logger
}

func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		listeners: list.New(),
		logger:    logger,
	}
}

// Subscribe registers fn and returns a function removing it again. Unsubscribing twice is a no-op.
func (b *Broadcaster) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	el := b.listeners.PushBack(fn)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.listeners.Remove(el)
			b.mu.Unlock()
		})
	}
}

// Notify calls every listener in subscription order. A panicking listener is logged and skipped.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, b.listeners.Len())
	for el := b.listeners.Front(); el != nil; el = el.Next() {
		fns = append(fns, el.Value.(func()))
	}
	b.mu.Unlock()

	for i, fn := range fns {
		b.call(i, fn)
	}
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listeners.Len()
}

func (b *Broadcaster) call(i int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("invalidation listener failed",
				zap.Int("listener", i),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
