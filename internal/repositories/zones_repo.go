package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/models"
)

// ZoneRepository reads zone reference data.
type ZoneRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	List(ctx context.Context, warehouseID uuid.UUID, zoneType models.ZoneType) ([]*models.Zone, error)
}

type zoneRepo struct {
	db DB
}

func NewZoneRepository(db DB) ZoneRepository {
	return &zoneRepo{db: db}
}

func (r *zoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	zone := &models.Zone{}
	query := `
		SELECT id, warehouse_id, name, code, zone_type
		FROM zones
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&zone.ID, &zone.WarehouseID, &zone.Name, &zone.Code, &zone.ZoneType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return zone, nil
}

// List filters by warehouse and zone type; uuid.Nil / empty type mean "any".
func (r *zoneRepo) List(ctx context.Context, warehouseID uuid.UUID, zoneType models.ZoneType) ([]*models.Zone, error) {
	query := `
		SELECT id, warehouse_id, name, code, zone_type
		FROM zones
		WHERE ($1::uuid IS NULL OR warehouse_id = $1)
		  AND ($2::text IS NULL OR zone_type = $2)
		ORDER BY code
	`
	var whArg any
	if warehouseID != uuid.Nil {
		whArg = warehouseID
	}
	var typeArg any
	if zoneType != "" {
		typeArg = string(zoneType)
	}

	rows, err := r.db.Query(ctx, query, whArg, typeArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.Zone
	for rows.Next() {
		zone := &models.Zone{}
		if err := rows.Scan(&zone.ID, &zone.WarehouseID, &zone.Name, &zone.Code, &zone.ZoneType); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}
