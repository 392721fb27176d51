package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/config"
	"github.com/TemirB/pos-core/internal/domain"
	"github.com/TemirB/pos-core/internal/pkg/retry"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

var (
	ErrBadJSON     = errors.New("bad json")
	ErrObserve     = errors.New("observe publish failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Observer is satisfied by *publish.Watcher.
type Observer interface {
	Observe(ctx context.Context, ts time.Time) (bool, error)
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

type Handler struct {
	observer    Observer
	breaker     brk
	logger      *zap.Logger
	retryPolicy config.Retry
}

func NewHandler(observer Observer, breaker brk, retryPolicy config.Retry, logger *zap.Logger) *Handler {
	return &Handler{
		observer:    observer,
		breaker:     breaker,
		logger:      logger,
		retryPolicy: retryPolicy,
	}
}

// Handle processes one "menu published" event. The consumer commits the offset itself
// after a nil return.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("Circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var event domain.PublishMarker
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.logger.Error("Bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return ErrBadJSON
	}
	if event.PublishedAt.IsZero() {
		h.logger.Error("Missing published_at",
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return ErrBadJSON
	}

	var invalidated bool
	if err := retry.Do(ctx, h.retryPolicy, func() error {
		var err error
		invalidated, err = h.observer.Observe(ctx, event.PublishedAt)
		return err
	}); err != nil {
		h.logger.Error("Observe failed after retries",
			zap.Time("published_at", event.PublishedAt),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return fmt.Errorf("%w: %v", ErrObserve, err)
	}

	h.breaker.Success()
	h.logger.Info("Processed publish event",
		zap.Time("published_at", event.PublishedAt),
		zap.Bool("invalidated", invalidated),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
	)
	return nil
}
