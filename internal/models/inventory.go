package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is the stock projection per (warehouse, location, item). Rows are
// materialized when a tare is put away and relocated when it moves.
type Inventory struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WarehouseID uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	LocationID  uuid.UUID  `json:"location_id" db:"location_id"`
	ItemID      uuid.UUID  `json:"item_id" db:"item_id"`
	TareID      *uuid.UUID `json:"tare_id" db:"tare_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Movement is one journal entry for stock relocation. From is nil for the
// initial putaway out of receiving.
type Movement struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	WarehouseID    uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	ItemID         uuid.UUID  `json:"item_id" db:"item_id"`
	FromLocationID *uuid.UUID `json:"from_location_id" db:"from_location_id"`
	ToLocationID   *uuid.UUID `json:"to_location_id" db:"to_location_id"`
	TareID         *uuid.UUID `json:"tare_id" db:"tare_id"`
	Quantity       int        `json:"quantity" db:"quantity"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
