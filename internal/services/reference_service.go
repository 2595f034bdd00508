package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"stowage/internal/caching"
	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
)

const referenceCacheTTL = 5 * time.Minute

// ReferenceService serves the read-only master data the engine depends on:
// warehouses, zones, locations and items. Item and location lookups are
// cached; cache errors are logged and ignored.
type ReferenceService interface {
	ListWarehouses(ctx context.Context, activeOnly bool) ([]*models.Warehouse, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	ListZones(ctx context.Context, warehouseID uuid.UUID, zoneType models.ZoneType) ([]*models.Zone, error)
	ListLocations(ctx context.Context, warehouseID, zoneID uuid.UUID, activeOnly bool) ([]*models.Location, error)
	GetLocationWithZone(ctx context.Context, id uuid.UUID) (*models.LocationWithZone, error)
	SearchItems(ctx context.Context, query, barcode string, limit, offset int) ([]*models.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type referenceService struct {
	warehouses repositories.WarehouseRepository
	zones      repositories.ZoneRepository
	locations  repositories.LocationRepository
	items      repositories.ItemRepository
	cache      caching.CacheService
}

func NewReferenceService(
	warehouses repositories.WarehouseRepository,
	zones repositories.ZoneRepository,
	locations repositories.LocationRepository,
	items repositories.ItemRepository,
	cache caching.CacheService,
) ReferenceService {
	return &referenceService{
		warehouses: warehouses,
		zones:      zones,
		locations:  locations,
		items:      items,
		cache:      cache,
	}
}

func (s *referenceService) ListWarehouses(ctx context.Context, activeOnly bool) ([]*models.Warehouse, error) {
	return s.warehouses.List(ctx, activeOnly)
}

func (s *referenceService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, common.NewNotFoundError("warehouse")
	}
	return warehouse, nil
}

func (s *referenceService) ListZones(ctx context.Context, warehouseID uuid.UUID, zoneType models.ZoneType) ([]*models.Zone, error) {
	if zoneType != "" && !zoneType.Valid() {
		return nil, common.NewValidationError("zone_type", "unknown zone type: "+string(zoneType))
	}
	return s.zones.List(ctx, warehouseID, zoneType)
}

func (s *referenceService) ListLocations(ctx context.Context, warehouseID, zoneID uuid.UUID, activeOnly bool) ([]*models.Location, error) {
	return s.locations.List(ctx, warehouseID, zoneID, activeOnly)
}

func (s *referenceService) GetLocationWithZone(ctx context.Context, id uuid.UUID) (*models.LocationWithZone, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLocation(ctx, id)
		if err != nil {
			log.Printf("WARN: location cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	location, err := s.locations.GetWithZone(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, common.NewNotFoundError("location")
	}

	if s.cache != nil {
		if err := s.cache.SetLocation(ctx, location, referenceCacheTTL); err != nil {
			log.Printf("WARN: location cache write failed: %v", err)
		}
	}
	return location, nil
}

func (s *referenceService) SearchItems(ctx context.Context, query, barcode string, limit, offset int) ([]*models.Item, error) {
	if barcode != "" {
		item, err := s.items.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return []*models.Item{}, nil
		}
		return []*models.Item{item}, nil
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.items.Search(ctx, query, limit, offset)
}

func (s *referenceService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.GetItem(ctx, id)
		if err != nil {
			log.Printf("WARN: item cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, common.NewNotFoundError("item")
	}

	if s.cache != nil {
		if err := s.cache.SetItem(ctx, item, referenceCacheTTL); err != nil {
			log.Printf("WARN: item cache write failed: %v", err)
		}
	}
	return item, nil
}
