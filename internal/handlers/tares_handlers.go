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

// TareHandlers exposes the tare registry and tare movement over HTTP.
type TareHandlers struct {
	tareService     services.TareService
	movementService services.MovementService
}

func NewTareHandlers(tareService services.TareService, movementService services.MovementService) *TareHandlers {
	return &TareHandlers{tareService: tareService, movementService: movementService}
}

// ListTaresRequest represents supported tare list filters.
type ListTaresRequest struct {
	StatusFilter string `query:"status_filter"`
	Code         string `query:"code"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

func (h *TareHandlers) ListTares(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListTaresRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("query", "invalid query parameters"))
	}
	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}
	locationID, err := parseUUIDQuery(c, "location_id")
	if err != nil {
		return common.SendError(c, err)
	}
	typeID, err := parseUUIDQuery(c, "type_id")
	if err != nil {
		return common.SendError(c, err)
	}

	tares, err := h.tareService.ListTares(ctx, repositories.TareFilter{
		WarehouseID: warehouseID,
		LocationID:  locationID,
		TypeID:      typeID,
		Status:      models.TareStatus(req.StatusFilter),
		Code:        req.Code,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tares)
}

// CreateTareRequest is the single-tare creation payload.
type CreateTareRequest struct {
	WarehouseID  uuid.UUID  `json:"warehouse_id"`
	TypeID       uuid.UUID  `json:"type_id"`
	LocationID   *uuid.UUID `json:"location_id"`
	ParentTareID *uuid.UUID `json:"parent_tare_id"`
}

func (h *TareHandlers) CreateTare(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateTareRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	tare, err := h.tareService.CreateTare(ctx, &services.CreateTareRequest{
		WarehouseID:  req.WarehouseID,
		TypeID:       req.TypeID,
		LocationID:   req.LocationID,
		ParentTareID: req.ParentTareID,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, tare)
}

// CreateTaresBulkRequest creates a batch of identical tares.
type CreateTaresBulkRequest struct {
	CreateTareRequest
	Count int `json:"count"`
}

func (h *TareHandlers) CreateTaresBulk(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateTaresBulkRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	tares, err := h.tareService.CreateTaresBulk(ctx, &services.CreateTareRequest{
		WarehouseID:  req.WarehouseID,
		TypeID:       req.TypeID,
		LocationID:   req.LocationID,
		ParentTareID: req.ParentTareID,
	}, req.Count)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, tares)
}

func (h *TareHandlers) ListForPutaway(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}
	tares, err := h.tareService.ListForPutaway(ctx, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tares)
}

func (h *TareHandlers) ListInStorage(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}
	tares, err := h.tareService.ListInStorage(ctx, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tares)
}

func (h *TareHandlers) GetTare(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	tare, err := h.tareService.GetTare(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tare)
}

func (h *TareHandlers) ListTareItems(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	items, err := h.tareService.ListTareItems(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// MoveTareRequest targets a relocation (putaway or in-storage move).
type MoveTareRequest struct {
	TargetLocationID uuid.UUID `json:"target_location_id"`
}

func (h *TareHandlers) PutawayTare(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req MoveTareRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}
	if req.TargetLocationID == uuid.Nil {
		return common.SendError(c, common.NewValidationError("target_location_id", "target_location_id is required"))
	}

	tare, err := h.movementService.Putaway(ctx, id, req.TargetLocationID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tare)
}

func (h *TareHandlers) MoveTare(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req MoveTareRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}
	if req.TargetLocationID == uuid.Nil {
		return common.SendError(c, common.NewValidationError("target_location_id", "target_location_id is required"))
	}

	tare, err := h.movementService.Move(ctx, id, req.TargetLocationID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tare)
}
