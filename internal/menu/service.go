package menu

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/cache"
	"github.com/TemirB/pos-core/internal/domain"
)

//go:generate mockgen -source internal/menu/service.go -destination=internal/menu/service_mock_test.go -package=menu

const (
	ResourceCategories     = "categories"
	ResourceMenuItems      = "menu_items"
	ResourceVariants       = "variants"
	ResourceProteinTypes   = "protein_types"
	ResourceCustomizations = "customizations"
	ResourceCategoryItems  = "category_items"
)

// Source is the backend the menu is read from.
type Source interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	MenuItems(ctx context.Context) ([]domain.MenuItem, error)
	Variants(ctx context.Context) ([]domain.Variant, error)
	ProteinTypes(ctx context.Context) ([]domain.ProteinType, error)
	Customizations(ctx context.Context) ([]domain.Customization, error)
	ItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error)
}

// Notifier surfaces a one-line message to whoever is looking at the menu.
type Notifier interface {
	Notify(message string)
}

type TTLs struct {
	Categories     time.Duration
	MenuItems      time.Duration
	Variants       time.Duration
	ProteinTypes   time.Duration
	Customizations time.Duration
	CategoryItems  time.Duration
}

func DefaultTTLs() TTLs {
	return TTLs{
		Categories:     5 * time.Minute,
		MenuItems:      2 * time.Minute,
		Variants:       2 * time.Minute,
		ProteinTypes:   5 * time.Minute,
		Customizations: 5 * time.Minute,
		CategoryItems:  time.Minute,
	}
}

type Service struct {
	source   Source
	notifier Notifier
	logger   *zap.Logger
	events   *cache.Broadcaster

	categories     *cache.Resource[[]domain.Category]
	items          *cache.Resource[[]domain.MenuItem]
	variants       *cache.Resource[[]domain.Variant]
	proteinTypes   *cache.Resource[[]domain.ProteinType]
	customizations *cache.Resource[[]domain.Customization]
	byCategory     *cache.Store[[]domain.MenuItem]
}

// NewService wires one cache per resource. opts are applied to every cache; WithCapacity
// only matters for the per-category buckets.
func NewService(source Source, ttls TTLs, notifier Notifier, logger *zap.Logger, opts ...cache.Option) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	opts = append([]cache.Option{cache.WithLogger(logger)}, opts...)

	s := &Service{
		source:   source,
		notifier: notifier,
		logger:   logger,
		events:   cache.NewBroadcaster(logger),
	}

	var err error
	if s.categories, err = cache.NewResource(ResourceCategories, ttls.Categories, source.Categories, opts...); err != nil {
		return nil, fmt.Errorf("categories cache: %w", err)
	}
	if s.items, err = cache.NewResource(ResourceMenuItems, ttls.MenuItems, source.MenuItems, opts...); err != nil {
		return nil, fmt.Errorf("menu items cache: %w", err)
	}
	if s.variants, err = cache.NewResource(ResourceVariants, ttls.Variants, source.Variants, opts...); err != nil {
		return nil, fmt.Errorf("variants cache: %w", err)
	}
	if s.proteinTypes, err = cache.NewResource(ResourceProteinTypes, ttls.ProteinTypes, source.ProteinTypes, opts...); err != nil {
		return nil, fmt.Errorf("protein types cache: %w", err)
	}
	if s.customizations, err = cache.NewResource(ResourceCustomizations, ttls.Customizations, source.Customizations, opts...); err != nil {
		return nil, fmt.Errorf("customizations cache: %w", err)
	}
	if s.byCategory, err = cache.NewStore[[]domain.MenuItem](ResourceCategoryItems, ttls.CategoryItems, opts...); err != nil {
		return nil, fmt.Errorf("category items cache: %w", err)
	}
	return s, nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.Fetch(ctx)
}

func (s *Service) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.items.Fetch(ctx)
}

func (s *Service) Variants(ctx context.Context) ([]domain.Variant, error) {
	return s.variants.Fetch(ctx)
}

func (s *Service) ProteinTypes(ctx context.Context) ([]domain.ProteinType, error) {
	return s.proteinTypes.Fetch(ctx)
}

func (s *Service) Customizations(ctx context.Context) ([]domain.Customization, error) {
	return s.customizations.Fetch(ctx)
}

// ItemsByCategory caches each category's items in its own bucket.
func (s *Service) ItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	if categoryID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.byCategory.Get(ctx, categoryID, func(ctx context.Context) ([]domain.MenuItem, error) {
		return s.source.ItemsByCategory(ctx, categoryID)
	})
}

// Invalidate drops one global resource by name.
func (s *Service) Invalidate(resource string) error {
	switch resource {
	case ResourceCategories:
		s.categories.Invalidate()
	case ResourceMenuItems:
		s.items.Invalidate()
	case ResourceVariants:
		s.variants.Invalidate()
	case ResourceProteinTypes:
		s.proteinTypes.Invalidate()
	case ResourceCustomizations:
		s.customizations.Invalidate()
	case ResourceCategoryItems:
		s.byCategory.InvalidateAll()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownResource, resource)
	}
	s.logger.Info("menu cache invalidated", zap.String("resource", resource))
	s.events.Notify()
	return nil
}

// InvalidateByCategory drops one category bucket, or all of them for an empty id.
func (s *Service) InvalidateByCategory(categoryID string) {
	if categoryID == "" {
		s.byCategory.InvalidateAll()
	} else {
		s.byCategory.Invalidate(categoryID)
	}
	s.logger.Info("category items invalidated", zap.String("category_id", categoryID))
	s.events.Notify()
}

func (s *Service) InvalidateAll() {
	s.categories.Invalidate()
	s.items.Invalidate()
	s.variants.Invalidate()
	s.proteinTypes.Invalidate()
	s.customizations.Invalidate()
	s.byCategory.InvalidateAll()

	s.logger.Info("menu cache invalidated", zap.String("resource", "all"))
	s.events.Notify()
}

// SubscribeToInvalidation registers fn for every invalidation; the result unsubscribes.
func (s *Service) SubscribeToInvalidation(fn func()) func() {
	return s.events.Subscribe(fn)
}
