package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
	"stowage/internal/services"
)

// InboundOrderHandlers exposes the inbound order lifecycle over HTTP. All
// status vocabulary normalization happens here; the engine below only ever
// sees canonical statuses.
type InboundOrderHandlers struct {
	inboundService services.InboundService
}

func NewInboundOrderHandlers(inboundService services.InboundService) *InboundOrderHandlers {
	return &InboundOrderHandlers{inboundService: inboundService}
}

// ListInboundOrdersRequest represents supported list filters.
type ListInboundOrdersRequest struct {
	StatusFilter   string `query:"status_filter"`
	ExternalNumber string `query:"external_number"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

func (h *InboundOrderHandlers) ListInboundOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListInboundOrdersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("query", "invalid query parameters"))
	}
	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}

	filter := repositories.InboundOrderFilter{
		WarehouseID:    warehouseID,
		ExternalNumber: req.ExternalNumber,
		Limit:          req.Limit,
		Offset:         req.Offset,
	}
	if req.StatusFilter != "" {
		status := models.NormalizeInboundStatus(req.StatusFilter)
		if !status.Valid() {
			return common.SendError(c, common.NewValidationError("status_filter", "unknown status: "+req.StatusFilter))
		}
		filter.Status = status
	}

	orders, err := h.inboundService.ListOrders(ctx, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateInboundOrderRequest is the order declaration payload.
type CreateInboundOrderRequest struct {
	ExternalNumber string                   `json:"external_number"`
	WarehouseID    uuid.UUID                `json:"warehouse_id"`
	Status         string                   `json:"status"`
	Lines          []CreateInboundOrderLine `json:"lines"`
}

type CreateInboundOrderLine struct {
	ItemID      uuid.UUID  `json:"item_id"`
	ExpectedQty int        `json:"expected_qty"`
	LocationID  *uuid.UUID `json:"location_id"`
}

func (h *InboundOrderHandlers) CreateInboundOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateInboundOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	svcReq := &services.CreateInboundOrderRequest{
		ExternalNumber: req.ExternalNumber,
		WarehouseID:    req.WarehouseID,
	}
	if req.Status != "" {
		svcReq.Status = models.NormalizeInboundStatus(req.Status)
	}
	for _, line := range req.Lines {
		svcReq.Lines = append(svcReq.Lines, services.CreateInboundLineRequest{
			ItemID:      line.ItemID,
			ExpectedQty: line.ExpectedQty,
			LocationID:  line.LocationID,
		})
	}

	order, err := h.inboundService.CreateOrder(ctx, svcReq)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *InboundOrderHandlers) GetInboundOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	order, err := h.inboundService.GetOrder(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateInboundStatusRequest carries the requested transition.
type UpdateInboundStatusRequest struct {
	Status string `json:"status"`
}

func (h *InboundOrderHandlers) UpdateInboundStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req UpdateInboundStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}
	if req.Status == "" {
		return common.SendError(c, common.NewValidationError("status", "status is required"))
	}

	order, err := h.inboundService.ChangeStatus(ctx, id, models.NormalizeInboundStatus(req.Status))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ReceiveRequest is one receive event from a scanner or receiving screen.
type ReceiveRequest struct {
	LineID    *uuid.UUID `json:"line_id"`
	ItemID    *uuid.UUID `json:"item_id"`
	Qty       int        `json:"qty"`
	TareID    uuid.UUID  `json:"tare_id"`
	Condition string     `json:"condition"`
}

func (h *InboundOrderHandlers) Receive(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req ReceiveRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	svcReq := &services.ReceiveRequest{
		LineID: req.LineID,
		ItemID: req.ItemID,
		Qty:    req.Qty,
		TareID: req.TareID,
	}
	if req.Condition != "" {
		condition := models.ReceiveCondition(req.Condition)
		svcReq.Condition = &condition
	}

	order, err := h.inboundService.Receive(ctx, id, svcReq)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// CloseTareRequest parks a tare at a receiving location.
type CloseTareRequest struct {
	TareID     uuid.UUID `json:"tare_id"`
	LocationID uuid.UUID `json:"location_id"`
}

func (h *InboundOrderHandlers) CloseTare(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req CloseTareRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}
	if req.TareID == uuid.Nil {
		return common.SendError(c, common.NewValidationError("tare_id", "tare_id is required"))
	}
	if req.LocationID == uuid.Nil {
		return common.SendError(c, common.NewValidationError("location_id", "location_id is required"))
	}

	order, err := h.inboundService.CloseTare(ctx, id, req.TareID, req.LocationID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *InboundOrderHandlers) ListReceipts(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	receipts, err := h.inboundService.ListReceipts(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, receipts)
}
