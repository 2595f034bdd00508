package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers serves liveness/readiness probes.
type HealthHandlers struct {
	db      *pgxpool.Pool
	version string
}

func NewHealthHandlers(db *pgxpool.Pool, version string) *HealthHandlers {
	return &HealthHandlers{db: db, version: version}
}

// HealthCheck is the basic liveness probe.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck reports whether the service can reach its database.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// DetailedHealthCheck adds pool stats and runtime info for operators.
func (h *HealthHandlers) DetailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	dbStatus := "healthy"
	overall := "healthy"
	statusCode := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		overall = "degraded"
		statusCode = http.StatusPartialContent
	}

	stat := h.db.Stat()
	return c.JSON(statusCode, map[string]any{
		"overall_status": overall,
		"version":        h.version,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"goroutines":     runtime.NumGoroutine(),
		"checks": map[string]any{
			"database": map[string]any{
				"status":            dbStatus,
				"total_connections": stat.TotalConns(),
				"idle_connections":  stat.IdleConns(),
			},
		},
	})
}
