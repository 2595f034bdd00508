package models

import (
	"time"

	"github.com/google/uuid"
)

// TareStatus tracks where a container is in its lifecycle. A tare starts as
// inbound, becomes storage after putaway and closed once it is emptied or
// retired. Picking and outbound belong to the outbound flow.
type TareStatus string

const (
	TareStatusInbound  TareStatus = "inbound"
	TareStatusStorage  TareStatus = "storage"
	TareStatusPicking  TareStatus = "picking"
	TareStatusOutbound TareStatus = "outbound"
	TareStatusClosed   TareStatus = "closed"
)

func (s TareStatus) Valid() bool {
	switch s {
	case TareStatusInbound, TareStatusStorage, TareStatusPicking, TareStatusOutbound, TareStatusClosed:
		return true
	}
	return false
}

// TareType is master data describing a class of containers. Prefix seeds the
// generated tare code, level is the nesting depth (pallet > box > tote).
type TareType struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Code   string    `json:"code" db:"code"`
	Name   string    `json:"name" db:"name"`
	Prefix string    `json:"prefix" db:"prefix"`
	Level  int       `json:"level" db:"level"`
}

type Tare struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	WarehouseID  uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	TypeID       uuid.UUID  `json:"type_id" db:"type_id"`
	LocationID   *uuid.UUID `json:"location_id" db:"location_id"`
	ParentTareID *uuid.UUID `json:"parent_tare_id" db:"parent_tare_id"`
	Code         string     `json:"code" db:"code"`
	Status       TareStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// TareItem is one aggregated item entry inside a tare's content ledger.
type TareItem struct {
	ID       uuid.UUID `json:"id" db:"id"`
	TareID   uuid.UUID `json:"tare_id" db:"tare_id"`
	ItemID   uuid.UUID `json:"item_id" db:"item_id"`
	Quantity int       `json:"quantity" db:"quantity"`
}

// TareItemWithItem joins the ledger entry with item master data for list views.
type TareItemWithItem struct {
	TareItem
	ItemSKU  string `json:"item_sku"`
	ItemName string `json:"item_name"`
	ItemUnit string `json:"item_unit"`
}
