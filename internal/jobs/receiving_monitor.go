package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"stowage/internal/models"
	"stowage/internal/repositories"
)

// ReceivingMonitor scans for inbound orders that need operator attention:
// orders flagged problem or mis_sort, and orders stuck in receiving with no
// activity past a staleness threshold.
type ReceivingMonitor struct {
	orders         repositories.InboundOrderRepository
	staleThreshold time.Duration
}

// ReceivingAlert describes one order flagged by a scan.
type ReceivingAlert struct {
	OrderID        uuid.UUID            `json:"order_id"`
	ExternalNumber string               `json:"external_number"`
	WarehouseID    uuid.UUID            `json:"warehouse_id"`
	Status         models.InboundStatus `json:"status"`
	OpenLines      int                  `json:"open_lines"`
	LastActivity   time.Time            `json:"last_activity"`
}

func NewReceivingMonitor(orders repositories.InboundOrderRepository, staleThreshold time.Duration) *ReceivingMonitor {
	if staleThreshold <= 0 {
		staleThreshold = 24 * time.Hour
	}
	return &ReceivingMonitor{orders: orders, staleThreshold: staleThreshold}
}

// CheckFlaggedOrders returns alerts for every order currently in problem or
// mis_sort status.
func (m *ReceivingMonitor) CheckFlaggedOrders(ctx context.Context) ([]ReceivingAlert, error) {
	var alerts []ReceivingAlert
	for _, status := range []models.InboundStatus{models.InboundStatusProblem, models.InboundStatusMisSort} {
		orders, err := m.orders.List(ctx, repositories.InboundOrderFilter{Status: status, Limit: 500})
		if err != nil {
			log.Printf("Failed to list %s orders: %v", status, err)
			return nil, err
		}
		for _, order := range orders {
			alerts = append(alerts, m.toAlert(order))
		}
	}
	return alerts, nil
}

// CheckStaleReceiving returns alerts for orders that have been in receiving
// with no status change for longer than the staleness threshold.
func (m *ReceivingMonitor) CheckStaleReceiving(ctx context.Context) ([]ReceivingAlert, error) {
	orders, err := m.orders.List(ctx, repositories.InboundOrderFilter{
		Status: models.InboundStatusReceiving,
		Limit:  500,
	})
	if err != nil {
		log.Printf("Failed to list receiving orders: %v", err)
		return nil, err
	}

	cutoff := time.Now().Add(-m.staleThreshold)
	var alerts []ReceivingAlert
	for _, order := range orders {
		if order.UpdatedAt.Before(cutoff) {
			alerts = append(alerts, m.toAlert(order))
		}
	}
	return alerts, nil
}

func (m *ReceivingMonitor) toAlert(order *models.InboundOrder) ReceivingAlert {
	openLines := 0
	for _, line := range order.Lines {
		if !line.LineStatus.Settled() {
			openLines++
		}
	}
	return ReceivingAlert{
		OrderID:        order.ID,
		ExternalNumber: order.ExternalNumber,
		WarehouseID:    order.WarehouseID,
		Status:         order.Status,
		OpenLines:      openLines,
		LastActivity:   order.UpdatedAt,
	}
}

// LogAlerts writes alerts to the application log for operators.
func (m *ReceivingMonitor) LogAlerts(alerts []ReceivingAlert) {
	if len(alerts) == 0 {
		log.Println("No receiving alerts")
		return
	}
	for _, alert := range alerts {
		log.Printf("ALERT: order %s (%s) is %s with %d open lines, last activity %s",
			alert.ExternalNumber,
			alert.OrderID.String(),
			alert.Status,
			alert.OpenLines,
			alert.LastActivity.Format(time.RFC3339))
	}
}

// ScheduledScan runs both checks and logs what it finds.
func (m *ReceivingMonitor) ScheduledScan(ctx context.Context) error {
	log.Println("Starting receiving anomaly scan")

	flagged, err := m.CheckFlaggedOrders(ctx)
	if err != nil {
		return err
	}
	m.LogAlerts(flagged)

	stale, err := m.CheckStaleReceiving(ctx)
	if err != nil {
		return err
	}
	m.LogAlerts(stale)

	log.Printf("Receiving anomaly scan completed: %d flagged, %d stale", len(flagged), len(stale))
	return nil
}
