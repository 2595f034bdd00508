package services

import (
	"stowage/internal/models"
)

// Pure reconciliation rules of the receiving engine. These are the single
// source of truth for line and order status; nothing else in the codebase may
// derive status on its own.

// ComputeLineStatus derives the line status from its quantities.
//
// Priority: wrong item beats everything, then over-receipt, then the normal
// progression. tolerancePct widens the accepted overage before an over-receipt
// is escalated to mis_sort for human review; with the default 0 any excess is
// a plain over_received.
func ComputeLineStatus(expectedQty, receivedQty int, wrongItem bool, tolerancePct int) models.LineStatus {
	switch {
	case wrongItem:
		return models.LineStatusMisSort
	case receivedQty > expectedQty:
		if tolerancePct > 0 && receivedQty > expectedQty+overAllowance(expectedQty, tolerancePct) {
			return models.LineStatusMisSort
		}
		return models.LineStatusOverReceived
	case receivedQty == expectedQty && expectedQty > 0:
		return models.LineStatusFullyReceived
	case receivedQty > 0:
		return models.LineStatusPartiallyReceived
	default:
		return models.LineStatusOpen
	}
}

func overAllowance(expectedQty, tolerancePct int) int {
	return expectedQty * tolerancePct / 100
}

// ComputeOrderStatus derives the aggregate order status from its lines while
// receiving is in progress.
//
// A mis-sorted line flags the whole order mis_sort; an over-received line
// flags it problem. Both keep the order open for further events and operator
// resolution. The order auto-completes to received once every line is settled
// cleanly and at least one was fully received; when every line was cancelled
// the order settles as cancelled, since nothing is coming anymore.
func ComputeOrderStatus(current models.InboundStatus, lines []*models.InboundOrderLine) models.InboundStatus {
	if !current.AcceptsReceiving() {
		return current
	}

	hasMisSort := false
	hasOver := false
	allSettled := len(lines) > 0
	received := 0
	for _, line := range lines {
		switch line.LineStatus {
		case models.LineStatusMisSort:
			hasMisSort = true
		case models.LineStatusOverReceived:
			hasOver = true
		}
		if !line.LineStatus.Settled() {
			allSettled = false
		}
		if line.LineStatus == models.LineStatusFullyReceived {
			received++
		}
	}

	switch {
	case hasMisSort:
		return models.InboundStatusMisSort
	case hasOver:
		return models.InboundStatusProblem
	case allSettled && received > 0:
		return models.InboundStatusReceived
	case allSettled:
		return models.InboundStatusCancelled
	default:
		return models.InboundStatusReceiving
	}
}
