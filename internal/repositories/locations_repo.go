package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/models"
)

// LocationRepository reads location reference data. GetWithZone is the lookup
// used by every placement validation, so it always joins the zone.
type LocationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	GetWithZone(ctx context.Context, id uuid.UUID) (*models.LocationWithZone, error)
	List(ctx context.Context, warehouseID, zoneID uuid.UUID, activeOnly bool) ([]*models.Location, error)
}

type locationRepo struct {
	db DB
}

func NewLocationRepository(db DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT id, warehouse_id, zone_id, code, description, is_active
		FROM locations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&location.ID, &location.WarehouseID, &location.ZoneID,
		&location.Code, &location.Description, &location.Active,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) GetWithZone(ctx context.Context, id uuid.UUID) (*models.LocationWithZone, error) {
	query := `
		SELECT l.id, l.warehouse_id, l.zone_id, l.code, l.description, l.is_active,
		       z.id, z.warehouse_id, z.name, z.code, z.zone_type
		FROM locations l
		LEFT JOIN zones z ON z.id = l.zone_id
		WHERE l.id = $1
	`
	loc := &models.LocationWithZone{}
	var (
		zoneID          *uuid.UUID
		zoneWarehouseID *uuid.UUID
		zoneName        *string
		zoneCode        *string
		zoneType        *models.ZoneType
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.WarehouseID, &loc.ZoneID, &loc.Code, &loc.Description, &loc.Active,
		&zoneID, &zoneWarehouseID, &zoneName, &zoneCode, &zoneType,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if zoneID != nil {
		loc.Zone = &models.Zone{
			ID:          *zoneID,
			WarehouseID: *zoneWarehouseID,
			Name:        *zoneName,
			Code:        *zoneCode,
			ZoneType:    *zoneType,
		}
	}
	return loc, nil
}

func (r *locationRepo) List(ctx context.Context, warehouseID, zoneID uuid.UUID, activeOnly bool) ([]*models.Location, error) {
	query := `
		SELECT id, warehouse_id, zone_id, code, description, is_active
		FROM locations
		WHERE ($1::uuid IS NULL OR warehouse_id = $1)
		  AND ($2::uuid IS NULL OR zone_id = $2)
		  AND ($3::bool = FALSE OR is_active = TRUE)
		ORDER BY code
	`
	var whArg, zoneArg any
	if warehouseID != uuid.Nil {
		whArg = warehouseID
	}
	if zoneID != uuid.Nil {
		zoneArg = zoneID
	}

	rows, err := r.db.Query(ctx, query, whArg, zoneArg, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := rows.Scan(
			&location.ID, &location.WarehouseID, &location.ZoneID,
			&location.Code, &location.Description, &location.Active,
		); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}
