package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
)

// MovementService relocates tares. Putaway closes the receiving phase for a
// tare by moving it from an inbound dock into storage and materializing its
// contents as inventory; Move relocates a stored tare and carries the
// inventory along. Both journal every item moved.
type MovementService interface {
	Putaway(ctx context.Context, tareID, targetLocationID uuid.UUID) (*models.Tare, error)
	Move(ctx context.Context, tareID, targetLocationID uuid.UUID) (*models.Tare, error)
	ListInventory(ctx context.Context, filter repositories.InventoryFilter) ([]*models.Inventory, error)
}

type movementService struct {
	db        repositories.DB
	tares     repositories.TareRepository
	locations repositories.LocationRepository
	inventory repositories.InventoryRepository
}

func NewMovementService(
	db repositories.DB,
	tares repositories.TareRepository,
	locations repositories.LocationRepository,
	inventory repositories.InventoryRepository,
) MovementService {
	return &movementService{
		db:        db,
		tares:     tares,
		locations: locations,
		inventory: inventory,
	}
}

func (s *movementService) Putaway(ctx context.Context, tareID, targetLocationID uuid.UUID) (*models.Tare, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tares := s.tares.WithTx(tx)

	// Lock the tare before checking its state. A concurrent putaway of the
	// same tare waits here and then fails the inbound check instead of
	// materializing the inventory a second time.
	tare, err := tares.GetByIDForUpdate(ctx, tareID)
	if err != nil {
		return nil, err
	}
	if tare == nil {
		return nil, common.NewNotFoundError("tare")
	}
	if tare.Status != models.TareStatusInbound {
		return nil, common.NewInvalidStateError(
			fmt.Sprintf("tare is %s, only inbound tares can be put away", tare.Status))
	}

	if tare.LocationID != nil {
		source, err := s.locations.GetWithZone(ctx, *tare.LocationID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, common.NewNotFoundError("source location")
		}
		if source.ZoneTypeOf() != models.ZoneTypeInbound {
			return nil, common.NewInvalidStateError("tare is not at an inbound location")
		}
	}

	target, err := s.locations.GetWithZone(ctx, targetLocationID)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlacement(target, tare.WarehouseID, models.ZoneTypeStorage); err != nil {
		return nil, err
	}

	items, err := tares.GetItems(ctx, tareID)
	if err != nil {
		return nil, err
	}

	inventory := s.inventory.WithTx(tx)
	for _, item := range items {
		if err := inventory.Add(ctx, tare.WarehouseID, targetLocationID, item.ItemID, &tare.ID, item.Quantity); err != nil {
			return nil, err
		}
		movement := &models.Movement{
			ID:             uuid.New(),
			WarehouseID:    tare.WarehouseID,
			ItemID:         item.ItemID,
			FromLocationID: tare.LocationID,
			ToLocationID:   &targetLocationID,
			TareID:         &tare.ID,
			Quantity:       item.Quantity,
		}
		if err := inventory.InsertMovement(ctx, movement); err != nil {
			return nil, err
		}
	}

	if err := tares.UpdatePlacement(ctx, tareID, &targetLocationID, models.TareStatusStorage); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.tares.GetByID(ctx, tareID)
}

func (s *movementService) Move(ctx context.Context, tareID, targetLocationID uuid.UUID) (*models.Tare, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tares := s.tares.WithTx(tx)

	// Same locking discipline as Putaway: the placement read and the
	// inventory relocation happen against one locked snapshot of the tare.
	tare, err := tares.GetByIDForUpdate(ctx, tareID)
	if err != nil {
		return nil, err
	}
	if tare == nil {
		return nil, common.NewNotFoundError("tare")
	}

	allowedZones := MoveTargetZones(tare.Status)
	if allowedZones == nil {
		return nil, common.NewInvalidStateError(
			fmt.Sprintf("tare is %s, only storage or picking tares can be moved", tare.Status))
	}
	if tare.LocationID == nil {
		return nil, common.NewInvalidStateError("tare is not assigned to a location")
	}
	if *tare.LocationID == targetLocationID {
		return nil, common.NewValidationError("target_location_id", "tare is already at the target location")
	}

	target, err := s.locations.GetWithZone(ctx, targetLocationID)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlacement(target, tare.WarehouseID, allowedZones...); err != nil {
		return nil, err
	}

	items, err := tares.GetItems(ctx, tareID)
	if err != nil {
		return nil, err
	}

	sourceLocationID := *tare.LocationID
	inventory := s.inventory.WithTx(tx)
	for _, item := range items {
		if err := inventory.Take(ctx, tare.WarehouseID, sourceLocationID, item.ItemID, item.Quantity); err != nil {
			return nil, err
		}
		if err := inventory.Add(ctx, tare.WarehouseID, targetLocationID, item.ItemID, &tare.ID, item.Quantity); err != nil {
			return nil, err
		}
		movement := &models.Movement{
			ID:             uuid.New(),
			WarehouseID:    tare.WarehouseID,
			ItemID:         item.ItemID,
			FromLocationID: &sourceLocationID,
			ToLocationID:   &targetLocationID,
			TareID:         &tare.ID,
			Quantity:       item.Quantity,
		}
		if err := inventory.InsertMovement(ctx, movement); err != nil {
			return nil, err
		}
	}

	if err := tares.UpdatePlacement(ctx, tareID, &targetLocationID, tare.Status); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.tares.GetByID(ctx, tareID)
}

func (s *movementService) ListInventory(ctx context.Context, filter repositories.InventoryFilter) ([]*models.Inventory, error) {
	return s.inventory.List(ctx, filter)
}
