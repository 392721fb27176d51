// Package database reads the POS backend tables with pgx. It is the only package that
// knows table and column names.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/domain"
)

const (
	tblCategories     = "categories"
	tblMenuItems      = "menu_items"
	tblVariants       = "item_variants"
	tblProteinTypes   = "protein_types"
	tblCustomizations = "customizations"
	tblTables         = "restaurant_tables"
	tblOrders         = "orders"
	tblPublish        = "menu_publish"
)

type Repo struct {
	pool   *pgxpool.Pool
	schema string
}

func New(pool *pgxpool.Pool, schema string) *Repo {
	if schema == "" {
		schema = "public"
	}
	return &Repo{pool: pool, schema: schema}
}

// Connect opens a pool with query tracing routed to logger and pings it.
func Connect(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newZapTracer(logger),
		LogLevel: tracelog.LogLevelWarn,
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func (r *Repo) qt(tbl string) string { return quoteTable(r.schema, tbl) }

func quoteTable(schema, tbl string) string {
	return pgx.Identifier{schema, tbl}.Sanitize()
}

func (r *Repo) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, name, sort_order, is_active
		FROM %s
		WHERE is_active
		ORDER BY sort_order, name
	`, r.qt(tblCategories)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Name, &c.SortOrder, &c.Active)
		return c, err
	})
}

const menuItemColumns = `id::text, category_id::text, name, COALESCE(description, ''), price::float8, is_available, sort_order`

func scanMenuItem(row pgx.CollectableRow) (domain.MenuItem, error) {
	var it domain.MenuItem
	err := row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.Available, &it.SortOrder)
	return it, err
}

func (r *Repo) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY sort_order, name
	`, menuItemColumns, r.qt(tblMenuItems)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

func (r *Repo) ItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE category_id::text = $1
		ORDER BY sort_order, name
	`, menuItemColumns, r.qt(tblMenuItems)), categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

func (r *Repo) Variants(ctx context.Context) ([]domain.Variant, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, menu_item_id::text, COALESCE(protein_type_id::text, ''), name, price::float8
		FROM %s
		ORDER BY menu_item_id, sort_order
	`, r.qt(tblVariants)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Variant, error) {
		var v domain.Variant
		err := row.Scan(&v.ID, &v.MenuItemID, &v.ProteinTypeID, &v.Name, &v.Price)
		return v, err
	})
}

func (r *Repo) ProteinTypes(ctx context.Context) ([]domain.ProteinType, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, name, sort_order
		FROM %s
		ORDER BY sort_order, name
	`, r.qt(tblProteinTypes)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProteinType, error) {
		var p domain.ProteinType
		err := row.Scan(&p.ID, &p.Name, &p.SortOrder)
		return p, err
	})
}

func (r *Repo) Customizations(ctx context.Context) ([]domain.Customization, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, name, COALESCE(group_name, ''), price::float8, COALESCE(menu_item_id::text, '')
		FROM %s
		ORDER BY group_name, name
	`, r.qt(tblCustomizations)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Customization, error) {
		var c domain.Customization
		err := row.Scan(&c.ID, &c.Name, &c.Group, &c.Price, &c.MenuItemID)
		return c, err
	})
}

func (r *Repo) Tables(ctx context.Context) ([]domain.TableConfig, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, table_number, capacity, COALESCE(section, '')
		FROM %s
		ORDER BY table_number
	`, r.qt(tblTables)))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TableConfig, error) {
		var t domain.TableConfig
		err := row.Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.Section)
		return t, err
	})
}

// ActiveOrders returns orders that still hold tables, oldest first so that first-match
// ownership favours the order seated earliest.
func (r *Repo) ActiveOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, COALESCE(table_id::text, ''), COALESCE(linked_tables, '{}'), guest_count,
		       status::text, COALESCE(group_id::text, ''), created_at, updated_at
		FROM %s
		WHERE status::text <> ALL($1::text[])
		ORDER BY created_at, id
	`, r.qt(tblOrders)), terminalStatuses())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderRecord, error) {
		var (
			o      domain.OrderRecord
			linked []int32
			status string
		)
		err := row.Scan(&o.ID, &o.TableID, &linked, &o.GuestCount, &status, &o.GroupID, &o.CreatedAt, &o.UpdatedAt)
		o.Status = domain.OrderStatus(status)
		o.LinkedTables = make([]int, len(linked))
		for i, n := range linked {
			o.LinkedTables[i] = int(n)
		}
		return o, err
	})
}

// LastPublished reads the single publish marker row. No row means nothing was published.
func (r *Repo) LastPublished(ctx context.Context) (time.Time, error) {
	var ts time.Time
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT published_at FROM %s
		ORDER BY published_at DESC
		LIMIT 1
	`, r.qt(tblPublish))).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

func terminalStatuses() []string {
	return []string{
		string(domain.OrderPaid),
		string(domain.OrderCompleted),
		string(domain.OrderCancelled),
	}
}
