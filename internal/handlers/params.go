package handlers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stowage/internal/common"
)

// parseUUIDParam parses a required path parameter.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.NewValidationError(name, "malformed id: "+raw)
	}
	return id, nil
}

// parseUUIDQuery parses an optional query parameter; absent means uuid.Nil.
func parseUUIDQuery(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.NewValidationError(name, "malformed id: "+raw)
	}
	return id, nil
}
