package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stowage/internal/common"
	"stowage/internal/jobs"
	"stowage/internal/jobs/background"
)

// JobHandlers exposes the background job surface: scheduler introspection and
// on-demand runs of the receiving anomaly scan.
type JobHandlers struct {
	scheduler *background.JobScheduler
	monitor   *jobs.ReceivingMonitor
}

func NewJobHandlers(scheduler *background.JobScheduler, monitor *jobs.ReceivingMonitor) *JobHandlers {
	return &JobHandlers{scheduler: scheduler, monitor: monitor}
}

func (h *JobHandlers) JobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}

// RunReceivingScan runs the anomaly scan outside its schedule and returns the
// alerts instead of only logging them.
func (h *JobHandlers) RunReceivingScan(c echo.Context) error {
	ctx := c.Request().Context()

	flagged, err := h.monitor.CheckFlaggedOrders(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	stale, err := h.monitor.CheckStaleReceiving(ctx)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"flagged": flagged,
		"stale":   stale,
	})
}
