package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/common"
	"stowage/internal/models"
)

// TareFilter narrows tare listings. Zero values mean "any".
type TareFilter struct {
	WarehouseID uuid.UUID
	LocationID  uuid.UUID
	TypeID      uuid.UUID
	Status      models.TareStatus
	Code        string
	Limit       int
	Offset      int
}

// TareRepository tracks physical containers and their content ledger.
type TareRepository interface {
	WithTx(tx pgx.Tx) TareRepository

	Create(ctx context.Context, tare *models.Tare) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tare, error)

	// GetByIDForUpdate locks the tare row until the surrounding transaction
	// ends, so a placement check and the placement update that follows it act
	// on the same state even under concurrent relocations.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tare, error)

	List(ctx context.Context, filter TareFilter) ([]*models.Tare, error)
	ListForPutaway(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error)
	ListInStorage(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error)
	UpdatePlacement(ctx context.Context, id uuid.UUID, locationID *uuid.UUID, status models.TareStatus) error

	// NextSequence atomically advances the per-(warehouse, type) code counter.
	NextSequence(ctx context.Context, warehouseID, typeID uuid.UUID) (int, error)

	UpsertItem(ctx context.Context, tareID, itemID uuid.UUID, qty int) error
	GetItems(ctx context.Context, tareID uuid.UUID) ([]*models.TareItem, error)
	ListItemsWithItem(ctx context.Context, tareID uuid.UUID) ([]*models.TareItemWithItem, error)
}

type tareRepo struct {
	db DB
}

func NewTareRepository(db DB) TareRepository {
	return &tareRepo{db: db}
}

func (r *tareRepo) WithTx(tx pgx.Tx) TareRepository {
	return &tareRepo{db: tx}
}

const tareColumns = `id, warehouse_id, type_id, location_id, parent_tare_id, code, status, created_at, updated_at`

func (r *tareRepo) Create(ctx context.Context, tare *models.Tare) error {
	query := `
		INSERT INTO tares (id, warehouse_id, type_id, location_id, parent_tare_id, code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		tare.ID, tare.WarehouseID, tare.TypeID, tare.LocationID, tare.ParentTareID, tare.Code, tare.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewConflictError("tare code already exists: " + tare.Code)
		}
		return err
	}
	return nil
}

func (r *tareRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tare, error) {
	query := `SELECT ` + tareColumns + ` FROM tares WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tareRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tare, error) {
	query := `SELECT ` + tareColumns + ` FROM tares WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tareRepo) scanOne(row pgx.Row) (*models.Tare, error) {
	tare := &models.Tare{}
	err := row.Scan(
		&tare.ID, &tare.WarehouseID, &tare.TypeID, &tare.LocationID,
		&tare.ParentTareID, &tare.Code, &tare.Status, &tare.CreatedAt, &tare.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return tare, nil
}

func (r *tareRepo) List(ctx context.Context, filter TareFilter) ([]*models.Tare, error) {
	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	query := `
		SELECT ` + tareColumns + `
		FROM tares
		WHERE ($1::uuid IS NULL OR warehouse_id = $1)
		  AND ($2::uuid IS NULL OR location_id = $2)
		  AND ($3::uuid IS NULL OR type_id = $3)
		  AND ($4::text IS NULL OR status = $4)
		  AND ($5::text IS NULL OR code ILIKE '%' || $5 || '%')
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`
	var whArg, locArg, typeArg, statusArg, codeArg any
	if filter.WarehouseID != uuid.Nil {
		whArg = filter.WarehouseID
	}
	if filter.LocationID != uuid.Nil {
		locArg = filter.LocationID
	}
	if filter.TypeID != uuid.Nil {
		typeArg = filter.TypeID
	}
	if filter.Status != "" {
		statusArg = string(filter.Status)
	}
	if filter.Code != "" {
		codeArg = filter.Code
	}

	rows, err := r.db.Query(ctx, query, whArg, locArg, typeArg, statusArg, codeArg, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListForPutaway returns parked tares: still inbound but already placed at a
// receiving location, so they are ready to be moved into storage.
func (r *tareRepo) ListForPutaway(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	query := `
		SELECT ` + tareColumns + `
		FROM tares
		WHERE status = $1
		  AND location_id IS NOT NULL
		  AND ($2::uuid IS NULL OR warehouse_id = $2)
		ORDER BY updated_at
	`
	var whArg any
	if warehouseID != uuid.Nil {
		whArg = warehouseID
	}
	rows, err := r.db.Query(ctx, query, string(models.TareStatusInbound), whArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *tareRepo) ListInStorage(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	query := `
		SELECT ` + tareColumns + `
		FROM tares
		WHERE status = $1
		  AND ($2::uuid IS NULL OR warehouse_id = $2)
		ORDER BY code
	`
	var whArg any
	if warehouseID != uuid.Nil {
		whArg = warehouseID
	}
	rows, err := r.db.Query(ctx, query, string(models.TareStatusStorage), whArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *tareRepo) collect(rows pgx.Rows) ([]*models.Tare, error) {
	var tares []*models.Tare
	for rows.Next() {
		tare := &models.Tare{}
		if err := rows.Scan(
			&tare.ID, &tare.WarehouseID, &tare.TypeID, &tare.LocationID,
			&tare.ParentTareID, &tare.Code, &tare.Status, &tare.CreatedAt, &tare.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tares = append(tares, tare)
	}
	return tares, rows.Err()
}

func (r *tareRepo) UpdatePlacement(ctx context.Context, id uuid.UUID, locationID *uuid.UUID, status models.TareStatus) error {
	query := `
		UPDATE tares
		SET location_id = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, locationID, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("tare")
	}
	return nil
}

// NextSequence uses an upsert counter so two allocators can never observe the
// same value. The unique index on tares.code is the second line of defense.
func (r *tareRepo) NextSequence(ctx context.Context, warehouseID, typeID uuid.UUID) (int, error) {
	query := `
		INSERT INTO tare_code_sequences (warehouse_id, type_id, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (warehouse_id, type_id)
		DO UPDATE SET last_value = tare_code_sequences.last_value + 1
		RETURNING last_value
	`
	var seq int
	if err := r.db.QueryRow(ctx, query, warehouseID, typeID).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *tareRepo) UpsertItem(ctx context.Context, tareID, itemID uuid.UUID, qty int) error {
	query := `
		INSERT INTO tare_items (id, tare_id, item_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tare_id, item_id)
		DO UPDATE SET quantity = tare_items.quantity + EXCLUDED.quantity
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), tareID, itemID, qty)
	return err
}

func (r *tareRepo) GetItems(ctx context.Context, tareID uuid.UUID) ([]*models.TareItem, error) {
	query := `
		SELECT id, tare_id, item_id, quantity
		FROM tare_items
		WHERE tare_id = $1
		ORDER BY item_id
	`
	rows, err := r.db.Query(ctx, query, tareID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.TareItem
	for rows.Next() {
		item := &models.TareItem{}
		if err := rows.Scan(&item.ID, &item.TareID, &item.ItemID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *tareRepo) ListItemsWithItem(ctx context.Context, tareID uuid.UUID) ([]*models.TareItemWithItem, error) {
	query := `
		SELECT ti.id, ti.tare_id, ti.item_id, ti.quantity, i.sku, i.name, i.unit
		FROM tare_items ti
		JOIN items i ON i.id = ti.item_id
		WHERE ti.tare_id = $1
		ORDER BY i.sku
	`
	rows, err := r.db.Query(ctx, query, tareID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.TareItemWithItem
	for rows.Next() {
		item := &models.TareItemWithItem{}
		if err := rows.Scan(
			&item.ID, &item.TareID, &item.ItemID, &item.Quantity,
			&item.ItemSKU, &item.ItemName, &item.ItemUnit,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
