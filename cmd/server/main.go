package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/pos-core/internal/application/handler"
	"github.com/TemirB/pos-core/internal/cache"
	"github.com/TemirB/pos-core/internal/config"
	"github.com/TemirB/pos-core/internal/database"
	"github.com/TemirB/pos-core/internal/httpapi"
	"github.com/TemirB/pos-core/internal/kafka"
	"github.com/TemirB/pos-core/internal/menu"
	"github.com/TemirB/pos-core/internal/observability"
	"github.com/TemirB/pos-core/internal/pkg/breaker"
	"github.com/TemirB/pos-core/internal/publish"
	"github.com/TemirB/pos-core/internal/tables"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	clock := clockwork.NewRealClock()
	metrics := observability.NewInmem(1000)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DSN(), logger)
	cancel()
	if err != nil {
		return err
	}
	defer pool.Close()
	repo := database.New(pool, cfg.Pg.Schema)

	cacheOpts := []cache.Option{
		cache.WithClock(clock),
		cache.WithMetrics(metrics),
		cache.WithCapacity(cfg.Cache.Capacity),
	}

	menuSvc, err := menu.NewService(repo, menu.TTLs{
		Categories:     cfg.Cache.Categories,
		MenuItems:      cfg.Cache.MenuItems,
		Variants:       cfg.Cache.Variants,
		ProteinTypes:   cfg.Cache.ProteinTypes,
		Customizations: cfg.Cache.Customizations,
		CategoryItems:  cfg.Cache.CategoryItems,
	}, nil, logger, cacheOpts...)
	if err != nil {
		return err
	}
	menuSvc.SubscribeToInvalidation(func() {
		logger.Debug("Menu caches invalidated")
	})

	tableSvc, err := tables.NewService(repo, cfg.Cache.Tables, clock, logger, cache.WithMetrics(metrics))
	if err != nil {
		return err
	}

	markers, closeMarkers := markerStore(cfg, logger)
	defer closeMarkers()

	br := breaker.New(cfg.Breaker, clock)
	watcher := publish.NewWatcher(repo, markers, menuSvc, logger,
		publish.WithClock(clock),
		publish.WithInterval(cfg.Publish.PollInterval),
		publish.WithBreaker(br),
		publish.WithMetrics(metrics),
	)

	server := httpapi.New(menuSvc, tableSvc, logger, metrics)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return watcher.Run(ctx) })

	if cfg.Kafka.Enabled() {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, 1, 1, logger); err != nil {
			logger.Warn("Can't ensure kafka topic", zap.Error(err))
		}
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			GroupID:  cfg.Kafka.Group,
			MinBytes: 1,
			MaxBytes: 1 << 20,
			MaxWait:  time.Second,
		})
		defer reader.Close()

		h := handler.NewHandler(watcher, br, cfg.Retry, logger)
		consumer := kafka.NewConsumer(h, reader, cfg.Kafka.Workers, logger, metrics)
		g.Go(func() error {
			consumer.Start(ctx)
			return nil
		})
	} else {
		logger.Info("Kafka disabled, relying on polling for publishes")
	}

	g.Go(func() error {
		err := server.ListenAndServe(ctx, cfg.HTTPAddr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func markerStore(cfg config.Config, logger *zap.Logger) (publish.MarkerStore, func()) {
	if cfg.Publish.RedisAddr == "" {
		logger.Info("Publish marker kept on disk", zap.String("path", cfg.Publish.MarkerFile))
		return publish.NewFileStore(cfg.Publish.MarkerFile), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Publish.RedisAddr})
	logger.Info("Publish marker kept in redis",
		zap.String("addr", cfg.Publish.RedisAddr),
		zap.String("key", cfg.Publish.RedisKey),
	)
	return publish.NewRedisStore(client, cfg.Publish.RedisKey), func() { _ = client.Close() }
}
