package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stowage/internal/common"
	"stowage/internal/models"
)

type MovementServiceTestSuite struct {
	suite.Suite
	db        pgxmock.PgxPoolIface
	tares     *MockTareRepository
	locations *MockLocationRepository
	inventory *MockInventoryRepository
	svc       MovementService
	ctx       context.Context

	warehouseID uuid.UUID
	tareID      uuid.UUID
	itemID      uuid.UUID
	sourceID    uuid.UUID
	targetID    uuid.UUID
}

func (s *MovementServiceTestSuite) SetupTest() {
	db, err := pgxmock.NewPool()
	assert.NoError(s.T(), err)
	s.db = db

	s.tares = new(MockTareRepository)
	s.locations = new(MockLocationRepository)
	s.inventory = new(MockInventoryRepository)
	s.svc = NewMovementService(db, s.tares, s.locations, s.inventory)
	s.ctx = context.Background()

	s.warehouseID = uuid.New()
	s.tareID = uuid.New()
	s.itemID = uuid.New()
	s.sourceID = uuid.New()
	s.targetID = uuid.New()
}

func (s *MovementServiceTestSuite) TearDownTest() {
	s.db.Close()
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}

func (s *MovementServiceTestSuite) location(id uuid.UUID, zoneType models.ZoneType) *models.LocationWithZone {
	zoneID := uuid.New()
	return &models.LocationWithZone{
		Location: models.Location{
			ID:          id,
			WarehouseID: s.warehouseID,
			ZoneID:      &zoneID,
			Active:      true,
		},
		Zone: &models.Zone{ID: zoneID, WarehouseID: s.warehouseID, ZoneType: zoneType},
	}
}

func (s *MovementServiceTestSuite) parkedTare() *models.Tare {
	return &models.Tare{
		ID:          s.tareID,
		WarehouseID: s.warehouseID,
		LocationID:  &s.sourceID,
		Code:        "PAL-000001",
		Status:      models.TareStatusInbound,
	}
}

func (s *MovementServiceTestSuite) storedTare() *models.Tare {
	tare := s.parkedTare()
	tare.Status = models.TareStatusStorage
	return tare
}

func (s *MovementServiceTestSuite) TestPutaway_MaterializesInventoryAndStoresTare() {
	tare := s.parkedTare()

	s.db.ExpectBegin()
	s.db.ExpectCommit()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(tare, nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.sourceID).
		Return(s.location(s.sourceID, models.ZoneTypeInbound), nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.targetID).
		Return(s.location(s.targetID, models.ZoneTypeStorage), nil).Once()
	s.tares.On("GetItems", mock.Anything, s.tareID).Return([]*models.TareItem{
		{TareID: s.tareID, ItemID: s.itemID, Quantity: 15},
	}, nil).Once()
	s.inventory.On("Add", mock.Anything, s.warehouseID, s.targetID, s.itemID, &s.tareID, 15).Return(nil).Once()
	s.inventory.On("InsertMovement", mock.Anything, mock.MatchedBy(func(mv *models.Movement) bool {
		return mv.ItemID == s.itemID &&
			mv.FromLocationID != nil && *mv.FromLocationID == s.sourceID &&
			mv.ToLocationID != nil && *mv.ToLocationID == s.targetID &&
			mv.Quantity == 15
	})).Return(nil).Once()
	s.tares.On("UpdatePlacement", mock.Anything, s.tareID, &s.targetID, models.TareStatusStorage).Return(nil).Once()

	stored := s.storedTare()
	stored.LocationID = &s.targetID
	s.tares.On("GetByID", mock.Anything, s.tareID).Return(stored, nil).Once()

	got, err := s.svc.Putaway(s.ctx, s.tareID, s.targetID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.TareStatusStorage, got.Status)
	s.inventory.AssertExpectations(s.T())
	assert.NoError(s.T(), s.db.ExpectationsWereMet())
}

// Two workers racing to put away the same tare serialize on the tare row. The
// loser re-reads the tare as already stored and must abort without adding the
// inventory a second time.
func (s *MovementServiceTestSuite) TestPutaway_RejectsStoredTare() {
	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(s.storedTare(), nil).Once()

	_, err := s.svc.Putaway(s.ctx, s.tareID, s.targetID)
	assert.True(s.T(), common.IsInvalidState(err))
	s.inventory.AssertNotCalled(s.T(), "Add",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.tares.AssertNotCalled(s.T(), "UpdatePlacement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(s.T(), s.db.ExpectationsWereMet())
}

func (s *MovementServiceTestSuite) TestPutaway_RejectsInboundZoneTarget() {
	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(s.parkedTare(), nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.sourceID).
		Return(s.location(s.sourceID, models.ZoneTypeInbound), nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.targetID).
		Return(s.location(s.targetID, models.ZoneTypeInbound), nil).Once()

	_, err := s.svc.Putaway(s.ctx, s.tareID, s.targetID)
	assert.True(s.T(), common.IsValidation(err))
	s.tares.AssertNotCalled(s.T(), "UpdatePlacement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(s.T(), s.db.ExpectationsWereMet())
}

func (s *MovementServiceTestSuite) TestPutaway_UnknownTare() {
	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(nil, nil).Once()

	_, err := s.svc.Putaway(s.ctx, s.tareID, s.targetID)
	assert.True(s.T(), common.IsNotFound(err))
}

func (s *MovementServiceTestSuite) TestMove_RelocatesInventory() {
	tare := s.storedTare()

	s.db.ExpectBegin()
	s.db.ExpectCommit()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(tare, nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.targetID).
		Return(s.location(s.targetID, models.ZoneTypeStorage), nil).Once()
	s.tares.On("GetItems", mock.Anything, s.tareID).Return([]*models.TareItem{
		{TareID: s.tareID, ItemID: s.itemID, Quantity: 8},
	}, nil).Once()
	s.inventory.On("Take", mock.Anything, s.warehouseID, s.sourceID, s.itemID, 8).Return(nil).Once()
	s.inventory.On("Add", mock.Anything, s.warehouseID, s.targetID, s.itemID, &s.tareID, 8).Return(nil).Once()
	s.inventory.On("InsertMovement", mock.Anything, mock.Anything).Return(nil).Once()
	s.tares.On("UpdatePlacement", mock.Anything, s.tareID, &s.targetID, models.TareStatusStorage).Return(nil).Once()

	moved := s.storedTare()
	moved.LocationID = &s.targetID
	s.tares.On("GetByID", mock.Anything, s.tareID).Return(moved, nil).Once()

	got, err := s.svc.Move(s.ctx, s.tareID, s.targetID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), s.targetID, *got.LocationID)
	s.inventory.AssertExpectations(s.T())
	assert.NoError(s.T(), s.db.ExpectationsWereMet())
}

func (s *MovementServiceTestSuite) TestMove_RejectsInboundTare() {
	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(s.parkedTare(), nil).Once()

	_, err := s.svc.Move(s.ctx, s.tareID, s.targetID)
	assert.True(s.T(), common.IsInvalidState(err))
}

func (s *MovementServiceTestSuite) TestMove_RejectsNoOpRelocation() {
	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(s.storedTare(), nil).Once()

	_, err := s.svc.Move(s.ctx, s.tareID, s.sourceID)
	assert.True(s.T(), common.IsValidation(err))
}

func (s *MovementServiceTestSuite) TestMove_PickingTareMayStageOutbound() {
	tare := s.storedTare()
	tare.Status = models.TareStatusPicking

	s.db.ExpectBegin()
	s.db.ExpectCommit()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(tare, nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.targetID).
		Return(s.location(s.targetID, models.ZoneTypeOutbound), nil).Once()
	s.tares.On("GetItems", mock.Anything, s.tareID).Return([]*models.TareItem{}, nil).Once()
	s.tares.On("UpdatePlacement", mock.Anything, s.tareID, &s.targetID, models.TareStatusPicking).Return(nil).Once()

	staged := s.storedTare()
	staged.Status = models.TareStatusPicking
	staged.LocationID = &s.targetID
	s.tares.On("GetByID", mock.Anything, s.tareID).Return(staged, nil).Once()

	got, err := s.svc.Move(s.ctx, s.tareID, s.targetID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.TareStatusPicking, got.Status)
}

func (s *MovementServiceTestSuite) TestMove_InsufficientStockAborts() {
	tare := s.storedTare()

	s.db.ExpectBegin()
	s.db.ExpectRollback()
	s.tares.On("GetByIDForUpdate", mock.Anything, s.tareID).Return(tare, nil).Once()
	s.locations.On("GetWithZone", mock.Anything, s.targetID).
		Return(s.location(s.targetID, models.ZoneTypeStorage), nil).Once()
	s.tares.On("GetItems", mock.Anything, s.tareID).Return([]*models.TareItem{
		{TareID: s.tareID, ItemID: s.itemID, Quantity: 8},
	}, nil).Once()
	s.inventory.On("Take", mock.Anything, s.warehouseID, s.sourceID, s.itemID, 8).
		Return(common.NewConflictError("not enough stock")).Once()

	_, err := s.svc.Move(s.ctx, s.tareID, s.targetID)
	assert.True(s.T(), common.IsConflict(err))
	s.tares.AssertNotCalled(s.T(), "UpdatePlacement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(s.T(), s.db.ExpectationsWereMet())
}
