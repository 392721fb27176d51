package menu

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/pos-core/internal/cache"
	"github.com/TemirB/pos-core/internal/domain"
)

// FetchCompleteMenuData loads every menu resource concurrently and joins variants into
// their items. It never fails: a resource that cannot be loaded is replaced by its last
// known value, or an empty list, and reported through the Notifier and MenuData.Warnings.
// A caller that went away gets the fallbacks without any report. Returned slices are
// copies and may be modified.
func (s *Service) FetchCompleteMenuData(ctx context.Context) domain.MenuData {
	var (
		data     domain.MenuData
		items    []domain.MenuItem
		variants []domain.Variant

		okCategories, okItems, okVariants, okProteins, okCustomizations bool
	)

	var g errgroup.Group
	g.Go(func() error {
		data.Categories, okCategories = fetchOrFallback(ctx, s.categories, s.logger)
		return nil
	})
	g.Go(func() error {
		items, okItems = fetchOrFallback(ctx, s.items, s.logger)
		return nil
	})
	g.Go(func() error {
		variants, okVariants = fetchOrFallback(ctx, s.variants, s.logger)
		return nil
	})
	g.Go(func() error {
		data.ProteinTypes, okProteins = fetchOrFallback(ctx, s.proteinTypes, s.logger)
		return nil
	})
	g.Go(func() error {
		data.Customizations, okCustomizations = fetchOrFallback(ctx, s.customizations, s.logger)
		return nil
	})
	_ = g.Wait()

	data.Items = JoinVariants(items, variants)

	if ctx.Err() != nil {
		return data
	}

	for _, part := range []struct {
		ok    bool
		label string
	}{
		{okCategories, "categories"},
		{okItems, "menu items"},
		{okVariants, "variants"},
		{okProteins, "protein types"},
		{okCustomizations, "customizations"},
	} {
		if part.ok {
			continue
		}
		msg := "Failed to load " + part.label
		data.Warnings = append(data.Warnings, msg)
		s.notifier.Notify(msg)
	}

	return data
}

// JoinVariants returns copies of items with Variants set from variants by menu item id.
// Items without variants get an empty, non-nil list.
func JoinVariants(items []domain.MenuItem, variants []domain.Variant) []domain.MenuItem {
	byItem := make(map[string][]domain.Variant, len(items))
	for _, v := range variants {
		byItem[v.MenuItemID] = append(byItem[v.MenuItemID], v)
	}

	out := make([]domain.MenuItem, len(items))
	for i, it := range items {
		vs, ok := byItem[it.ID]
		if !ok {
			vs = []domain.Variant{}
		}
		it.Variants = vs
		out[i] = it
	}
	return out
}

func fetchOrFallback[V any](ctx context.Context, r *cache.Resource[[]V], logger *zap.Logger) ([]V, bool) {
	v, err := r.Fetch(ctx)
	if err == nil {
		return clone(v), true
	}

	last, ok := r.LastKnown()
	if ctx.Err() != nil {
		logger.Debug("menu resource fetch abandoned", zap.String("resource", r.Name()), zap.Error(err))
		return clone(last), false
	}
	logger.Error("menu resource fetch failed",
		zap.String("resource", r.Name()),
		zap.Bool("serving_last_known", ok),
		zap.Error(err),
	)
	return clone(last), false
}

// clone returns a non-nil shallow copy, so callers never share the cached backing array.
func clone[V any](v []V) []V {
	out := make([]V, len(v))
	copy(out, v)
	return out
}
