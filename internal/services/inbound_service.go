package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
)

// InboundService owns the inbound order state machine and the receiving
// engine. Every mutating operation runs in one transaction and returns the
// updated aggregate so callers never re-derive state on their side.
type InboundService interface {
	CreateOrder(ctx context.Context, req *CreateInboundOrderRequest) (*models.InboundOrder, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error)
	ListOrders(ctx context.Context, filter repositories.InboundOrderFilter) ([]*models.InboundOrder, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status models.InboundStatus) (*models.InboundOrder, error)
	Receive(ctx context.Context, orderID uuid.UUID, req *ReceiveRequest) (*models.InboundOrder, error)
	CloseTare(ctx context.Context, orderID, tareID, locationID uuid.UUID) (*models.InboundOrder, error)
	ListReceipts(ctx context.Context, orderID uuid.UUID) ([]*models.InboundReceipt, error)
}

// CreateInboundOrderRequest declares a supplier delivery and its expected lines.
type CreateInboundOrderRequest struct {
	ExternalNumber string
	WarehouseID    uuid.UUID
	Status         models.InboundStatus
	Lines          []CreateInboundLineRequest
}

type CreateInboundLineRequest struct {
	ItemID      uuid.UUID
	ExpectedQty int
	LocationID  *uuid.UUID
}

// ReceiveRequest is one receive event. LineID picks the line directly; ItemID
// resolves to the first open line expecting that item. When both are present
// LineID picks the line and ItemID names the physically received item, which
// is how a mis-sort is reported.
type ReceiveRequest struct {
	LineID    *uuid.UUID
	ItemID    *uuid.UUID
	Qty       int
	TareID    uuid.UUID
	Condition *models.ReceiveCondition
}

type inboundService struct {
	db           repositories.DB
	orders       repositories.InboundOrderRepository
	tares        repositories.TareRepository
	warehouses   repositories.WarehouseRepository
	locations    repositories.LocationRepository
	items        repositories.ItemRepository
	tolerancePct int
}

// NewInboundService creates the inbound order service. tolerancePct is the
// accepted over-receipt percentage before a line is escalated to mis_sort.
func NewInboundService(
	db repositories.DB,
	orders repositories.InboundOrderRepository,
	tares repositories.TareRepository,
	warehouses repositories.WarehouseRepository,
	locations repositories.LocationRepository,
	items repositories.ItemRepository,
	tolerancePct int,
) InboundService {
	return &inboundService{
		db:           db,
		orders:       orders,
		tares:        tares,
		warehouses:   warehouses,
		locations:    locations,
		items:        items,
		tolerancePct: tolerancePct,
	}
}

func (s *inboundService) CreateOrder(ctx context.Context, req *CreateInboundOrderRequest) (*models.InboundOrder, error) {
	if req.ExternalNumber == "" {
		return nil, common.NewValidationError("external_number", "external number is required")
	}
	if len(req.Lines) == 0 {
		return nil, common.NewValidationError("lines", "at least one line is required")
	}

	warehouse, err := s.warehouses.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, common.NewNotFoundError("warehouse")
	}

	status := req.Status
	if status == "" {
		status = models.InboundStatusReadyForReceiving
	}
	if status != models.InboundStatusCreated && status != models.InboundStatusReadyForReceiving {
		return nil, common.NewValidationError("status", "new orders start as created or ready_for_receiving")
	}

	order := &models.InboundOrder{
		ID:             uuid.New(),
		ExternalNumber: req.ExternalNumber,
		WarehouseID:    req.WarehouseID,
		Status:         status,
	}
	for _, lr := range req.Lines {
		if lr.ExpectedQty <= 0 {
			return nil, common.NewValidationError("expected_qty", "expected quantity must be greater than zero")
		}
		item, err := s.items.GetByID(ctx, lr.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, common.NewNotFoundError(fmt.Sprintf("item %s", lr.ItemID))
		}
		if lr.LocationID != nil {
			location, err := s.locations.GetByID(ctx, *lr.LocationID)
			if err != nil {
				return nil, err
			}
			if location == nil {
				return nil, common.NewNotFoundError(fmt.Sprintf("location %s", *lr.LocationID))
			}
			if location.WarehouseID != req.WarehouseID {
				return nil, common.NewValidationError("location_id", "line location is not in the order warehouse")
			}
		}
		order.Lines = append(order.Lines, &models.InboundOrderLine{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ItemID:      lr.ItemID,
			ExpectedQty: lr.ExpectedQty,
			LocationID:  lr.LocationID,
			LineStatus:  models.LineStatusOpen,
		})
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, order.ID)
}

func (s *inboundService) GetOrder(ctx context.Context, id uuid.UUID) (*models.InboundOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NewNotFoundError("inbound order")
	}
	return order, nil
}

func (s *inboundService) ListOrders(ctx context.Context, filter repositories.InboundOrderFilter) ([]*models.InboundOrder, error) {
	return s.orders.List(ctx, filter)
}

func (s *inboundService) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]*models.InboundReceipt, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.ListReceipts(ctx, orderID)
}

// inboundTransitions lists the explicitly requestable transitions. The
// receiving→received edge here is the operator force-complete; the computed
// auto-transition happens inside Receive.
var inboundTransitions = map[models.InboundStatus][]models.InboundStatus{
	models.InboundStatusCreated:           {models.InboundStatusReadyForReceiving, models.InboundStatusCancelled},
	models.InboundStatusReadyForReceiving: {models.InboundStatusReceiving, models.InboundStatusCancelled},
	models.InboundStatusReceiving:         {models.InboundStatusReceived, models.InboundStatusProblem, models.InboundStatusMisSort, models.InboundStatusCancelled},
	models.InboundStatusProblem:           {models.InboundStatusReceiving, models.InboundStatusReceived, models.InboundStatusCancelled},
	models.InboundStatusMisSort:           {models.InboundStatusReceiving, models.InboundStatusReceived, models.InboundStatusCancelled},
	models.InboundStatusReceived:          {},
	models.InboundStatusCancelled:         {},
}

func (s *inboundService) ChangeStatus(ctx context.Context, id uuid.UUID, status models.InboundStatus) (*models.InboundOrder, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("status", "unknown status: "+string(status))
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == order.Status {
		return order, nil
	}

	allowed := false
	for _, next := range inboundTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, common.NewInvalidStateError(
			fmt.Sprintf("cannot transition inbound order from %s to %s", order.Status, status))
	}
	if status == models.InboundStatusReceiving && order.Status == models.InboundStatusReadyForReceiving && len(order.Lines) == 0 {
		return nil, common.NewInvalidStateError("order has no lines to receive")
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// Receive applies one receive event: appends the quantity to the tare ledger,
// advances the line, records the receipt and re-derives the order status. The
// whole operation is all-or-nothing.
func (s *inboundService) Receive(ctx context.Context, orderID uuid.UUID, req *ReceiveRequest) (*models.InboundOrder, error) {
	if req.Qty <= 0 {
		return nil, common.NewValidationError("qty", "quantity must be greater than zero")
	}
	if req.LineID == nil && req.ItemID == nil {
		return nil, common.NewValidationError("line_id", "either line_id or item_id is required")
	}
	if req.Condition != nil && !req.Condition.Valid() {
		return nil, common.NewValidationError("condition", "unknown condition: "+string(*req.Condition))
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	orders := s.orders.WithTx(tx)
	tares := s.tares.WithTx(tx)

	// Lock the order (and its lines) first, the tare second. Every mutating
	// flow takes locks in this order; concurrent events on the same line wait
	// here and then see the committed quantities, not the ones they raced.
	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NewNotFoundError("inbound order")
	}
	if !order.Status.AcceptsReceiving() {
		return nil, common.NewInvalidStateError(
			fmt.Sprintf("order is %s, receiving is not accepted", order.Status))
	}

	tare, err := tares.GetByIDForUpdate(ctx, req.TareID)
	if err != nil {
		return nil, err
	}
	if tare == nil {
		return nil, common.NewNotFoundError("tare")
	}
	if tare.WarehouseID != order.WarehouseID {
		return nil, common.NewValidationError("tare_id", "tare is not in the order warehouse")
	}
	if tare.Status == models.TareStatusClosed {
		return nil, common.NewConflictError("tare is closed for receiving")
	}

	line, actualItemID, newLine, err := s.resolveLine(ctx, order, req)
	if err != nil {
		return nil, err
	}

	wrongItem := actualItemID != line.ItemID || line.LineStatus == models.LineStatusMisSort
	line.ReceivedQty += req.Qty
	line.LineStatus = ComputeLineStatus(line.ExpectedQty, line.ReceivedQty, wrongItem, s.tolerancePct)

	if newLine {
		if err := orders.InsertLine(ctx, line); err != nil {
			return nil, err
		}
	} else {
		if err := orders.UpdateLine(ctx, line); err != nil {
			return nil, err
		}
	}

	if err := tares.UpsertItem(ctx, tare.ID, actualItemID, req.Qty); err != nil {
		return nil, err
	}

	receipt := &models.InboundReceipt{
		ID:        uuid.New(),
		OrderID:   order.ID,
		LineID:    line.ID,
		TareID:    tare.ID,
		ItemID:    actualItemID,
		Quantity:  req.Qty,
		Condition: req.Condition,
	}
	if err := orders.InsertReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	if next := ComputeOrderStatus(order.Status, order.Lines); next != order.Status {
		if err := orders.UpdateStatus(ctx, order.ID, next); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// resolveLine picks the order line the event applies to and the item that was
// physically received. A by-item event for an item the order never expected
// opens a zero-expectation mis-sort line so the goods stay tracked.
func (s *inboundService) resolveLine(ctx context.Context, order *models.InboundOrder, req *ReceiveRequest) (line *models.InboundOrderLine, actualItemID uuid.UUID, newLine bool, err error) {
	if req.ItemID != nil {
		item, err := s.items.GetByID(ctx, *req.ItemID)
		if err != nil {
			return nil, uuid.Nil, false, err
		}
		if item == nil {
			return nil, uuid.Nil, false, common.NewNotFoundError("item")
		}
	}

	if req.LineID != nil {
		for _, ln := range order.Lines {
			if ln.ID == *req.LineID {
				actualItemID = ln.ItemID
				if req.ItemID != nil {
					actualItemID = *req.ItemID
				}
				return ln, actualItemID, false, nil
			}
		}
		return nil, uuid.Nil, false, common.NewNotFoundError("line in this order")
	}

	var fallback *models.InboundOrderLine
	for _, ln := range order.Lines {
		if ln.ItemID != *req.ItemID {
			continue
		}
		if !ln.LineStatus.Settled() {
			return ln, *req.ItemID, false, nil
		}
		if fallback == nil {
			fallback = ln
		}
	}
	if fallback != nil {
		return fallback, *req.ItemID, false, nil
	}

	// Nothing on the order expects this item: open a zero-expectation line
	// already flagged mis_sort so the goods stay tracked.
	line = &models.InboundOrderLine{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ItemID:     *req.ItemID,
		LineStatus: models.LineStatusMisSort,
	}
	order.Lines = append(order.Lines, line)
	return line, *req.ItemID, true, nil
}

// CloseTare parks a tare at a receiving location once operators are done
// filling it. The tare stays inbound; putaway moves it into storage later.
// The tare row is locked for the duration so two closers cannot both pass the
// unplaced check and park the same tare twice.
func (s *inboundService) CloseTare(ctx context.Context, orderID, tareID, locationID uuid.UUID) (*models.InboundOrder, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	orders := s.orders.WithTx(tx)
	tares := s.tares.WithTx(tx)

	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NewNotFoundError("inbound order")
	}
	if !order.Status.AcceptsReceiving() {
		return nil, common.NewInvalidStateError(
			fmt.Sprintf("order is %s, tares can only be closed while receiving", order.Status))
	}

	tare, err := tares.GetByIDForUpdate(ctx, tareID)
	if err != nil {
		return nil, err
	}
	if tare == nil {
		return nil, common.NewNotFoundError("tare")
	}
	if tare.WarehouseID != order.WarehouseID {
		return nil, common.NewValidationError("tare_id", "tare is not in the order warehouse")
	}
	if tare.Status == models.TareStatusClosed {
		return nil, common.NewConflictError("tare is already closed")
	}
	if tare.LocationID != nil {
		return nil, common.NewConflictError("tare is already placed at a location")
	}

	location, err := s.locations.GetWithZone(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if err := ValidatePlacement(location, order.WarehouseID, models.ZoneTypeInbound); err != nil {
		return nil, err
	}

	if err := tares.UpdatePlacement(ctx, tare.ID, &locationID, models.TareStatusInbound); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}
