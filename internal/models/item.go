package models

import (
	"github.com/google/uuid"
)

type Item struct {
	ID      uuid.UUID `json:"id" db:"id"`
	SKU     string    `json:"sku" db:"sku"`
	Name    string    `json:"name" db:"name"`
	Barcode *string   `json:"barcode" db:"barcode"`
	Unit    string    `json:"unit" db:"unit"`
	Active  bool      `json:"is_active" db:"is_active"`
}
