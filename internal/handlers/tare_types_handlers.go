package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stowage/internal/common"
	"stowage/internal/models"
	"stowage/internal/services"
)

// TareTypeHandlers manages the tare type catalog.
type TareTypeHandlers struct {
	tareService services.TareService
}

func NewTareTypeHandlers(tareService services.TareService) *TareTypeHandlers {
	return &TareTypeHandlers{tareService: tareService}
}

func (h *TareTypeHandlers) ListTareTypes(c echo.Context) error {
	ctx := c.Request().Context()

	tareTypes, err := h.tareService.ListTareTypes(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tareTypes)
}

// TareTypeRequest carries tare type create/update fields.
type TareTypeRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Level  int    `json:"level"`
}

func (h *TareTypeHandlers) CreateTareType(c echo.Context) error {
	ctx := c.Request().Context()

	var req TareTypeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	created, err := h.tareService.CreateTareType(ctx, &models.TareType{
		Code:   req.Code,
		Name:   req.Name,
		Prefix: req.Prefix,
		Level:  req.Level,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TareTypeHandlers) UpdateTareType(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req TareTypeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, common.NewValidationError("body", "invalid request format"))
	}

	updated, err := h.tareService.UpdateTareType(ctx, &models.TareType{
		ID:     id,
		Code:   req.Code,
		Name:   req.Name,
		Prefix: req.Prefix,
		Level:  req.Level,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *TareTypeHandlers) DeleteTareType(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.tareService.DeleteTareType(ctx, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tare type deleted"})
}
