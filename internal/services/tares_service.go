package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
)

// TareService is the tare registry: it creates containers with generated
// codes and serves tare lookups. Placement changes live in MovementService.
type TareService interface {
	CreateTare(ctx context.Context, req *CreateTareRequest) (*models.Tare, error)
	CreateTaresBulk(ctx context.Context, req *CreateTareRequest, count int) ([]*models.Tare, error)
	GetTare(ctx context.Context, id uuid.UUID) (*models.Tare, error)
	ListTares(ctx context.Context, filter repositories.TareFilter) ([]*models.Tare, error)
	ListForPutaway(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error)
	ListInStorage(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error)
	ListTareItems(ctx context.Context, tareID uuid.UUID) ([]*models.TareItemWithItem, error)

	CreateTareType(ctx context.Context, tareType *models.TareType) (*models.TareType, error)
	UpdateTareType(ctx context.Context, tareType *models.TareType) (*models.TareType, error)
	DeleteTareType(ctx context.Context, id uuid.UUID) error
	ListTareTypes(ctx context.Context) ([]*models.TareType, error)
}

type CreateTareRequest struct {
	WarehouseID  uuid.UUID
	TypeID       uuid.UUID
	LocationID   *uuid.UUID
	ParentTareID *uuid.UUID
}

type tareService struct {
	db         repositories.DB
	tares      repositories.TareRepository
	tareTypes  repositories.TareTypeRepository
	warehouses repositories.WarehouseRepository
	locations  repositories.LocationRepository
}

func NewTareService(
	db repositories.DB,
	tares repositories.TareRepository,
	tareTypes repositories.TareTypeRepository,
	warehouses repositories.WarehouseRepository,
	locations repositories.LocationRepository,
) TareService {
	return &tareService{
		db:         db,
		tares:      tares,
		tareTypes:  tareTypes,
		warehouses: warehouses,
		locations:  locations,
	}
}

// BuildTareCode formats a container code from the type prefix and the
// allocated sequence number, e.g. PAL-000042.
func BuildTareCode(tareType *models.TareType, seq int) string {
	prefix := tareType.Prefix
	if prefix == "" {
		prefix = tareType.Code
	}
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

func (s *tareService) CreateTare(ctx context.Context, req *CreateTareRequest) (*models.Tare, error) {
	tares, err := s.CreateTaresBulk(ctx, req, 1)
	if err != nil {
		return nil, err
	}
	return tares[0], nil
}

// CreateTaresBulk creates count tares in one transaction. Either all of them
// are created or none; a code collision surfaces as ConflictError and the
// caller retries.
func (s *tareService) CreateTaresBulk(ctx context.Context, req *CreateTareRequest, count int) ([]*models.Tare, error) {
	if count <= 0 {
		return nil, common.NewValidationError("count", "count must be greater than zero")
	}
	if count > 500 {
		return nil, common.NewValidationError("count", "at most 500 tares per batch")
	}

	warehouse, err := s.warehouses.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, common.NewNotFoundError("warehouse")
	}

	tareType, err := s.tareTypes.GetByID(ctx, req.TypeID)
	if err != nil {
		return nil, err
	}
	if tareType == nil {
		return nil, common.NewNotFoundError("tare type")
	}

	if req.LocationID != nil {
		location, err := s.locations.GetByID(ctx, *req.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, common.NewNotFoundError("location")
		}
		if location.WarehouseID != req.WarehouseID {
			return nil, common.NewValidationError("location_id", "location is not in the tare warehouse")
		}
	}

	if req.ParentTareID != nil {
		parent, err := s.tares.GetByID(ctx, *req.ParentTareID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, common.NewNotFoundError("parent tare")
		}
		if parent.WarehouseID != req.WarehouseID {
			return nil, common.NewValidationError("parent_tare_id", "parent tare is not in the same warehouse")
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	repo := s.tares.WithTx(tx)
	created := make([]*models.Tare, 0, count)
	for i := 0; i < count; i++ {
		seq, err := repo.NextSequence(ctx, req.WarehouseID, req.TypeID)
		if err != nil {
			return nil, err
		}
		tare := &models.Tare{
			ID:           uuid.New(),
			WarehouseID:  req.WarehouseID,
			TypeID:       req.TypeID,
			LocationID:   req.LocationID,
			ParentTareID: req.ParentTareID,
			Code:         BuildTareCode(tareType, seq),
			Status:       models.TareStatusInbound,
		}
		if err := repo.Create(ctx, tare); err != nil {
			return nil, err
		}
		created = append(created, tare)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := make([]*models.Tare, 0, count)
	for _, tare := range created {
		fresh, err := s.tares.GetByID(ctx, tare.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, fresh)
	}
	return out, nil
}

func (s *tareService) GetTare(ctx context.Context, id uuid.UUID) (*models.Tare, error) {
	tare, err := s.tares.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tare == nil {
		return nil, common.NewNotFoundError("tare")
	}
	return tare, nil
}

func (s *tareService) ListTares(ctx context.Context, filter repositories.TareFilter) ([]*models.Tare, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, common.NewValidationError("status_filter", "unknown tare status: "+string(filter.Status))
	}
	return s.tares.List(ctx, filter)
}

func (s *tareService) ListForPutaway(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	return s.tares.ListForPutaway(ctx, warehouseID)
}

func (s *tareService) ListInStorage(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	return s.tares.ListInStorage(ctx, warehouseID)
}

func (s *tareService) ListTareItems(ctx context.Context, tareID uuid.UUID) ([]*models.TareItemWithItem, error) {
	if _, err := s.GetTare(ctx, tareID); err != nil {
		return nil, err
	}
	return s.tares.ListItemsWithItem(ctx, tareID)
}

func (s *tareService) CreateTareType(ctx context.Context, tareType *models.TareType) (*models.TareType, error) {
	if tareType.Code == "" {
		return nil, common.NewValidationError("code", "code is required")
	}
	if tareType.Level <= 0 {
		tareType.Level = 1
	}
	existing, err := s.tareTypes.GetByCode(ctx, tareType.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewConflictError("tare type with this code already exists")
	}
	tareType.ID = uuid.New()
	if err := s.tareTypes.Create(ctx, tareType); err != nil {
		return nil, err
	}
	return tareType, nil
}

func (s *tareService) UpdateTareType(ctx context.Context, tareType *models.TareType) (*models.TareType, error) {
	existing, err := s.tareTypes.GetByID(ctx, tareType.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.NewNotFoundError("tare type")
	}
	if tareType.Code == "" {
		tareType.Code = existing.Code
	}
	if tareType.Name == "" {
		tareType.Name = existing.Name
	}
	if tareType.Prefix == "" {
		tareType.Prefix = existing.Prefix
	}
	if tareType.Level <= 0 {
		tareType.Level = existing.Level
	}
	if err := s.tareTypes.Update(ctx, tareType); err != nil {
		return nil, err
	}
	return tareType, nil
}

func (s *tareService) DeleteTareType(ctx context.Context, id uuid.UUID) error {
	existing, err := s.tareTypes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return common.NewNotFoundError("tare type")
	}
	return s.tareTypes.Delete(ctx, id)
}

func (s *tareService) ListTareTypes(ctx context.Context) ([]*models.TareType, error) {
	return s.tareTypes.List(ctx)
}
