package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/repositories"
	"stowage/internal/services"
)

// ReferenceHandlers serves read-only master data and the inventory view.
type ReferenceHandlers struct {
	referenceService services.ReferenceService
	movementService  services.MovementService
}

func NewReferenceHandlers(referenceService services.ReferenceService, movementService services.MovementService) *ReferenceHandlers {
	return &ReferenceHandlers{referenceService: referenceService, movementService: movementService}
}

func (h *ReferenceHandlers) ListWarehouses(c echo.Context) error {
	ctx := c.Request().Context()

	activeOnly := c.QueryParam("active_only") == "true"
	warehouses, err := h.referenceService.ListWarehouses(ctx, activeOnly)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, warehouses)
}

func (h *ReferenceHandlers) GetWarehouse(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	warehouse, err := h.referenceService.GetWarehouse(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *ReferenceHandlers) ListZones(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}
	zones, err := h.referenceService.ListZones(ctx, warehouseID, models.ZoneType(c.QueryParam("zone_type")))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, zones)
}

func (h *ReferenceHandlers) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := parseUUIDQuery(c, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}
	zoneID, err := parseUUIDQuery(c, "zone_id")
	if err != nil {
		return common.SendError(c, err)
	}
	activeOnly := c.QueryParam("active_only") != "false"

	locations, err := h.referenceService.ListLocations(ctx, warehouseID, zoneID, activeOnly)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}

func (h *ReferenceHandlers) GetLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	location, err := h.referenceService.GetLocationWithZone(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, location)
}

// SearchItemsRequest represents item lookup parameters. A barcode, when
// present, wins over the free-text query.
type SearchItemsRequest struct {
	Query   string `query:"q"`
	Barcode string `query:"barcode"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

func (h *ReferenceHandlers) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()

	var req SearchItemsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("query", "invalid query parameters"))
	}
	items, err := h.referenceService.SearchItems(ctx, req.Query, req.Barcode, req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ReferenceHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	item, err := h.referenceService.GetItem(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// ListInventoryRequest filters the stock projection.
type ListInventoryRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *ReferenceHandlers) ListInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListInventoryRequest
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
	itemID, err := parseUUIDQuery(c, "item_id")
	if err != nil {
		return common.SendError(c, err)
	}

	inventory, err := h.movementService.ListInventory(ctx, repositories.InventoryFilter{
		WarehouseID: warehouseID,
		LocationID:  locationID,
		ItemID:      itemID,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, inventory)
}
