package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/models"
)

// WarehouseRepository reads warehouse reference data. The engine never
// mutates warehouses.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*models.Warehouse, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db DB
}

func NewWarehouseRepository(db DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	query := `
		SELECT id, name, code, is_active
		FROM warehouses
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *warehouseRepo) GetByCode(ctx context.Context, code string) (*models.Warehouse, error) {
	query := `
		SELECT id, name, code, is_active
		FROM warehouses
		WHERE code = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, code))
}

func (r *warehouseRepo) scanOne(row pgx.Row) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	err := row.Scan(&warehouse.ID, &warehouse.Name, &warehouse.Code, &warehouse.Active)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return warehouse, nil
}

func (r *warehouseRepo) List(ctx context.Context, activeOnly bool) ([]*models.Warehouse, error) {
	query := `
		SELECT id, name, code, is_active
		FROM warehouses
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		warehouse := &models.Warehouse{}
		if err := rows.Scan(&warehouse.ID, &warehouse.Name, &warehouse.Code, &warehouse.Active); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, rows.Err()
}
