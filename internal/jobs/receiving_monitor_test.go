package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stowage/internal/models"
	"stowage/internal/repositories"
)

// MockInboundOrderRepository mocks the InboundOrderRepository interface for testing
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

type ReceivingMonitorTestSuite struct {
	suite.Suite
	orders  *MockInboundOrderRepository
	monitor *ReceivingMonitor
	ctx     context.Context
}

func (s *ReceivingMonitorTestSuite) SetupTest() {
	s.orders = new(MockInboundOrderRepository)
	s.monitor = NewReceivingMonitor(s.orders, 24*time.Hour)
	s.ctx = context.Background()
}

func TestReceivingMonitorTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivingMonitorTestSuite))
}

func orderWithStatus(status models.InboundStatus, updatedAt time.Time) *models.InboundOrder {
	return &models.InboundOrder{
		ID:             uuid.New(),
		ExternalNumber: "IN-" + uuid.NewString()[:8],
		WarehouseID:    uuid.New(),
		Status:         status,
		UpdatedAt:      updatedAt,
		Lines: []*models.InboundOrderLine{
			{LineStatus: models.LineStatusOpen},
			{LineStatus: models.LineStatusFullyReceived},
		},
	}
}

func (s *ReceivingMonitorTestSuite) TestCheckFlaggedOrders_CollectsProblemAndMisSort() {
	problem := orderWithStatus(models.InboundStatusProblem, time.Now())
	misSort := orderWithStatus(models.InboundStatusMisSort, time.Now())

	s.orders.On("List", mock.Anything, repositories.InboundOrderFilter{
		Status: models.InboundStatusProblem, Limit: 500,
	}).Return([]*models.InboundOrder{problem}, nil).Once()
	s.orders.On("List", mock.Anything, repositories.InboundOrderFilter{
		Status: models.InboundStatusMisSort, Limit: 500,
	}).Return([]*models.InboundOrder{misSort}, nil).Once()

	alerts, err := s.monitor.CheckFlaggedOrders(s.ctx)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), alerts, 2)
	assert.Equal(s.T(), models.InboundStatusProblem, alerts[0].Status)
	assert.Equal(s.T(), 1, alerts[0].OpenLines)
	assert.Equal(s.T(), models.InboundStatusMisSort, alerts[1].Status)
}

func (s *ReceivingMonitorTestSuite) TestCheckStaleReceiving_FlagsOnlyStaleOrders() {
	fresh := orderWithStatus(models.InboundStatusReceiving, time.Now().Add(-1*time.Hour))
	stale := orderWithStatus(models.InboundStatusReceiving, time.Now().Add(-48*time.Hour))

	s.orders.On("List", mock.Anything, repositories.InboundOrderFilter{
		Status: models.InboundStatusReceiving, Limit: 500,
	}).Return([]*models.InboundOrder{fresh, stale}, nil).Once()

	alerts, err := s.monitor.CheckStaleReceiving(s.ctx)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), alerts, 1)
	assert.Equal(s.T(), stale.ID, alerts[0].OrderID)
}

func (s *ReceivingMonitorTestSuite) TestScheduledScan_PropagatesListErrors() {
	s.orders.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable")).Once()

	err := s.monitor.ScheduledScan(s.ctx)
	assert.Error(s.T(), err)
}

func (s *ReceivingMonitorTestSuite) TestDefaultStaleThreshold() {
	monitor := NewReceivingMonitor(s.orders, 0)
	assert.Equal(s.T(), 24*time.Hour, monitor.staleThreshold)
}
