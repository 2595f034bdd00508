package models

import (
	"github.com/google/uuid"
)

// ZoneType classifies a zone and constrains which tare operations may target
// locations inside it.
type ZoneType string

const (
	ZoneTypeInbound  ZoneType = "inbound"
	ZoneTypeStorage  ZoneType = "storage"
	ZoneTypeOutbound ZoneType = "outbound"
)

// Valid reports whether t is one of the known zone types.
func (t ZoneType) Valid() bool {
	switch t {
	case ZoneTypeInbound, ZoneTypeStorage, ZoneTypeOutbound:
		return true
	}
	return false
}

type Warehouse struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Code   string    `json:"code" db:"code"`
	Active bool      `json:"is_active" db:"is_active"`
}

type Zone struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	ZoneType    ZoneType  `json:"zone_type" db:"zone_type"`
}

type Location struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WarehouseID uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	ZoneID      *uuid.UUID `json:"zone_id" db:"zone_id"`
	Code        string     `json:"code" db:"code"`
	Description *string    `json:"description" db:"description"`
	Active      bool       `json:"is_active" db:"is_active"`
}

// LocationWithZone is a location joined with its zone. Every movement
// validation goes through it because zone type is what placement rules check.
type LocationWithZone struct {
	Location
	Zone *Zone `json:"zone"`
}

// ZoneTypeOf returns the zone type of the location, or "" when the location
// has no zone assigned.
func (l *LocationWithZone) ZoneTypeOf() ZoneType {
	if l.Zone == nil {
		return ""
	}
	return l.Zone.ZoneType
}
