package tables

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/cache"
	"github.com/TemirB/pos-core/internal/domain"
)

//go:generate mockgen -source internal/tables/service.go -destination=internal/tables/service_mock_test.go -package=tables

const ResourceTables = "tables"

type Source interface {
	Tables(ctx context.Context) ([]domain.TableConfig, error)
	ActiveOrders(ctx context.Context) ([]domain.OrderRecord, error)
}

// Service reads tables through a cache (they rarely change) and orders straight from
// the backend, then derives states on every call.
type Service struct {
	source Source
	tables *cache.Resource[[]domain.TableConfig]
	clock  clockwork.Clock
	colors *ColorAssigner
	logger *zap.Logger
}

func NewService(source Source, tablesTTL time.Duration, clock clockwork.Clock, logger *zap.Logger, opts ...cache.Option) (*Service, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]cache.Option{cache.WithClock(clock), cache.WithLogger(logger)}, opts...)

	tables, err := cache.NewResource(ResourceTables, tablesTTL, source.Tables, opts...)
	if err != nil {
		return nil, fmt.Errorf("tables cache: %w", err)
	}
	return &Service{
		source: source,
		tables: tables,
		clock:  clock,
		colors: processColors,
		logger: logger,
	}, nil
}

func (s *Service) TableStates(ctx context.Context) ([]domain.TableState, error) {
	tables, err := s.tables.Fetch(ctx)
	if err != nil {
		s.logger.Error("Can't load tables", zap.Error(err))
		return nil, err
	}
	orders, err := s.source.ActiveOrders(ctx)
	if err != nil {
		s.logger.Error("Can't load active orders", zap.Error(err))
		return nil, err
	}
	return ComputeTableStates(tables, orders, s.clock.Now()), nil
}

func (s *Service) LinkedGroups(ctx context.Context) ([]domain.LinkedGroup, error) {
	orders, err := s.source.ActiveOrders(ctx)
	if err != nil {
		s.logger.Error("Can't load active orders", zap.Error(err))
		return nil, err
	}
	groups := ComputeLinkedGroups(orders)
	for i := range groups {
		groups[i].Color = s.colors.Assign(groups[i].GroupID)
	}
	return groups, nil
}

func (s *Service) InvalidateTables() {
	s.tables.Invalidate()
}
