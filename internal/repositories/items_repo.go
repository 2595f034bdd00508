package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/models"
)

// ItemRepository reads item master data.
type ItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Item, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Item, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepository(db DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `
		SELECT id, sku, name, barcode, unit, is_active
		FROM items
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *itemRepo) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	query := `
		SELECT id, sku, name, barcode, unit, is_active
		FROM items
		WHERE barcode = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, barcode))
}

func (r *itemRepo) scanOne(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.SKU, &item.Name, &item.Barcode, &item.Unit, &item.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// Search matches sku or name case-insensitively; empty query lists all.
func (r *itemRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.Item, error) {
	sql := `
		SELECT id, sku, name, barcode, unit, is_active
		FROM items
		WHERE ($1 = '' OR sku ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY sku
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, sql, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.Barcode, &item.Unit, &item.Active); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
