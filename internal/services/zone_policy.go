package services

import (
	"fmt"

	"github.com/google/uuid"

	"stowage/internal/common"
	"stowage/internal/models"
)

// Zone placement policy. Pure predicates shared by close-tare, putaway and
// move so the zone-type rules exist in exactly one place.

// ValidatePlacement checks that a location can hold a tare of the given
// warehouse for an operation that requires one of the allowed zone types.
func ValidatePlacement(loc *models.LocationWithZone, warehouseID uuid.UUID, allowed ...models.ZoneType) error {
	if loc == nil {
		return common.NewNotFoundError("location")
	}
	if !loc.Active {
		return common.NewValidationError("location_id", "location is not active")
	}
	if loc.WarehouseID != warehouseID {
		return common.NewValidationError("location_id", "location is not in the tare warehouse")
	}
	if loc.Zone == nil {
		return common.NewValidationError("location_id", "location has no zone assigned")
	}
	for _, zt := range allowed {
		if loc.Zone.ZoneType == zt {
			return nil
		}
	}
	return common.NewValidationError("location_id",
		fmt.Sprintf("location is in a %s zone, expected %s", loc.Zone.ZoneType, zoneTypeList(allowed)))
}

// MoveTargetZones returns the zone types a tare of the given status may be
// moved into. Storage tares stay within storage zones; picking tares may also
// be staged into outbound zones.
func MoveTargetZones(status models.TareStatus) []models.ZoneType {
	switch status {
	case models.TareStatusStorage:
		return []models.ZoneType{models.ZoneTypeStorage}
	case models.TareStatusPicking:
		return []models.ZoneType{models.ZoneTypeStorage, models.ZoneTypeOutbound}
	default:
		return nil
	}
}

func zoneTypeList(types []models.ZoneType) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += " or "
		}
		out += string(t)
	}
	return out
}
