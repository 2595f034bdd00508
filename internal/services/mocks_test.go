package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"stowage/internal/models"
	"stowage/internal/repositories"
)

// MockInboundOrderRepository mocks repositories.InboundOrderRepository.
type MockInboundOrderRepository struct {
	mock.Mock
}

func (m *MockInboundOrderRepository) WithTx(tx pgx.Tx) repositories.InboundOrderRepository {
	return m
}

func (m *MockInboundOrderRepository) Create(ctx context.Context, order *models.InboundOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockInboundOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InboundOrder), args.Error(1)
}

func (m *MockInboundOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InboundOrder), args.Error(1)
}

func (m *MockInboundOrderRepository) List(ctx context.Context, filter repositories.InboundOrderFilter) ([]*models.InboundOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InboundOrder), args.Error(1)
}

func (m *MockInboundOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InboundStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockInboundOrderRepository) InsertLine(ctx context.Context, line *models.InboundOrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInboundOrderRepository) UpdateLine(ctx context.Context, line *models.InboundOrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockInboundOrderRepository) InsertReceipt(ctx context.Context, receipt *models.InboundReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockInboundOrderRepository) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]*models.InboundReceipt, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InboundReceipt), args.Error(1)
}

// MockTareRepository mocks repositories.TareRepository.
type MockTareRepository struct {
	mock.Mock
}

func (m *MockTareRepository) WithTx(tx pgx.Tx) repositories.TareRepository {
	return m
}

func (m *MockTareRepository) Create(ctx context.Context, tare *models.Tare) error {
	args := m.Called(ctx, tare)
	return args.Error(0)
}

func (m *MockTareRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tare), args.Error(1)
}

func (m *MockTareRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tare, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tare), args.Error(1)
}

func (m *MockTareRepository) List(ctx context.Context, filter repositories.TareFilter) ([]*models.Tare, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tare), args.Error(1)
}

func (m *MockTareRepository) ListForPutaway(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tare), args.Error(1)
}

func (m *MockTareRepository) ListInStorage(ctx context.Context, warehouseID uuid.UUID) ([]*models.Tare, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tare), args.Error(1)
}

func (m *MockTareRepository) UpdatePlacement(ctx context.Context, id uuid.UUID, locationID *uuid.UUID, status models.TareStatus) error {
	args := m.Called(ctx, id, locationID, status)
	return args.Error(0)
}

func (m *MockTareRepository) NextSequence(ctx context.Context, warehouseID, typeID uuid.UUID) (int, error) {
	args := m.Called(ctx, warehouseID, typeID)
	return args.Int(0), args.Error(1)
}

func (m *MockTareRepository) UpsertItem(ctx context.Context, tareID, itemID uuid.UUID, qty int) error {
	args := m.Called(ctx, tareID, itemID, qty)
	return args.Error(0)
}

func (m *MockTareRepository) GetItems(ctx context.Context, tareID uuid.UUID) ([]*models.TareItem, error) {
	args := m.Called(ctx, tareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TareItem), args.Error(1)
}

func (m *MockTareRepository) ListItemsWithItem(ctx context.Context, tareID uuid.UUID) ([]*models.TareItemWithItem, error) {
	args := m.Called(ctx, tareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TareItemWithItem), args.Error(1)
}

// MockWarehouseRepository mocks repositories.WarehouseRepository.
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetByCode(ctx context.Context, code string) (*models.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) List(ctx context.Context, activeOnly bool) ([]*models.Warehouse, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

// MockLocationRepository mocks repositories.LocationRepository.
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetWithZone(ctx context.Context, id uuid.UUID) (*models.LocationWithZone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationWithZone), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context, warehouseID, zoneID uuid.UUID, activeOnly bool) ([]*models.Location, error) {
	args := m.Called(ctx, warehouseID, zoneID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Location), args.Error(1)
}

// MockItemRepository mocks repositories.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

// MockTareTypeRepository mocks repositories.TareTypeRepository.
type MockTareTypeRepository struct {
	mock.Mock
}

func (m *MockTareTypeRepository) Create(ctx context.Context, tareType *models.TareType) error {
	args := m.Called(ctx, tareType)
	return args.Error(0)
}

func (m *MockTareTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TareType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TareType), args.Error(1)
}

func (m *MockTareTypeRepository) GetByCode(ctx context.Context, code string) (*models.TareType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TareType), args.Error(1)
}

func (m *MockTareTypeRepository) Update(ctx context.Context, tareType *models.TareType) error {
	args := m.Called(ctx, tareType)
	return args.Error(0)
}

func (m *MockTareTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTareTypeRepository) List(ctx context.Context) ([]*models.TareType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TareType), args.Error(1)
}

// MockInventoryRepository mocks repositories.InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) WithTx(tx pgx.Tx) repositories.InventoryRepository {
	return m
}

func (m *MockInventoryRepository) Add(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, tareID *uuid.UUID, qty int) error {
	args := m.Called(ctx, warehouseID, locationID, itemID, tareID, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) Take(ctx context.Context, warehouseID, locationID, itemID uuid.UUID, qty int) error {
	args := m.Called(ctx, warehouseID, locationID, itemID, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) List(ctx context.Context, filter repositories.InventoryFilter) ([]*models.Inventory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) InsertMovement(ctx context.Context, movement *models.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}
