package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/common"
	"stowage/internal/models"
)

// InventoryFilter narrows inventory listings. Zero values mean "any".
type InventoryFilter struct {
	WarehouseID uuid.UUID
	LocationID  uuid.UUID
	ItemID      uuid.UUID
	Limit       int
	Offset      int
}

// InventoryRepository maintains the stock projection and the movement
// journal. Add/Take are the only mutation primitives; relocation is a Take at
// the source followed by an Add at the target inside one transaction.
type InventoryRepository interface {
	WithTx(tx pgx.Tx) InventoryRepository

	Add(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, tareID *uuid.UUID, qty int) error
	Take(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, qty int) error
	List(ctx context.Context, filter InventoryFilter) ([]*models.Inventory, error)
	InsertMovement(ctx context.Context, movement *models.Movement) error
}

type inventoryRepo struct {
	db DB
}

func NewInventoryRepository(db DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) WithTx(tx pgx.Tx) InventoryRepository {
	return &inventoryRepo{db: tx}
}

func (r *inventoryRepo) Add(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, tareID *uuid.UUID, qty int) error {
	if qty <= 0 {
		return common.NewValidationError("qty", "quantity must be greater than zero")
	}
	query := `
		INSERT INTO inventory (id, warehouse_id, location_id, item_id, tare_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (warehouse_id, location_id, item_id)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity,
		              tare_id = EXCLUDED.tare_id,
		              updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), warehouseID, locationID, itemID, tareID, qty)
	return err
}

// Take decrements stock at a location and fails when not enough is present.
// Rows that reach zero are removed.
func (r *inventoryRepo) Take(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return common.NewValidationError("qty", "quantity must be greater than zero")
	}
	query := `
		UPDATE inventory
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE warehouse_id = $2 AND location_id = $3 AND item_id = $4 AND quantity >= $1
	`
	tag, err := r.db.Exec(ctx, query, qty, warehouseID, locationID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewConflictError(fmt.Sprintf("not enough stock of item %s at source location", itemID))
	}

	cleanup := `
		DELETE FROM inventory
		WHERE warehouse_id = $1 AND location_id = $2 AND item_id = $3 AND quantity <= 0
	`
	_, err = r.db.Exec(ctx, cleanup, warehouseID, locationID, itemID)
	return err
}

func (r *inventoryRepo) List(ctx context.Context, filter InventoryFilter) ([]*models.Inventory, error) {
	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	query := `
		SELECT id, warehouse_id, location_id, item_id, tare_id, quantity, updated_at
		FROM inventory
		WHERE ($1::uuid IS NULL OR warehouse_id = $1)
		  AND ($2::uuid IS NULL OR location_id = $2)
		  AND ($3::uuid IS NULL OR item_id = $3)
		ORDER BY updated_at DESC
		LIMIT $4 OFFSET $5
	`
	var whArg, locArg, itemArg any
	if filter.WarehouseID != uuid.Nil {
		whArg = filter.WarehouseID
	}
	if filter.LocationID != uuid.Nil {
		locArg = filter.LocationID
	}
	if filter.ItemID != uuid.Nil {
		itemArg = filter.ItemID
	}

	rows, err := r.db.Query(ctx, query, whArg, locArg, itemArg, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inv := &models.Inventory{}
		if err := rows.Scan(
			&inv.ID, &inv.WarehouseID, &inv.LocationID, &inv.ItemID,
			&inv.TareID, &inv.Quantity, &inv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

func (r *inventoryRepo) InsertMovement(ctx context.Context, movement *models.Movement) error {
	query := `
		INSERT INTO movements (id, warehouse_id, item_id, from_location_id, to_location_id, tare_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		movement.ID, movement.WarehouseID, movement.ItemID,
		movement.FromLocationID, movement.ToLocationID, movement.TareID, movement.Quantity)
	return err
}
