package models

import (
	"time"

	"github.com/google/uuid"
)

// InboundStatus is the canonical inbound order status vocabulary. The legacy
// draft/in_progress/completed names still appear in older client payloads and
// are normalized at the API boundary; they never enter the engine.
type InboundStatus string

const (
	InboundStatusCreated           InboundStatus = "created"
	InboundStatusReadyForReceiving InboundStatus = "ready_for_receiving"
	InboundStatusReceiving         InboundStatus = "receiving"
	InboundStatusReceived          InboundStatus = "received"
	InboundStatusCancelled         InboundStatus = "cancelled"
	InboundStatusProblem           InboundStatus = "problem"
	InboundStatusMisSort           InboundStatus = "mis_sort"
)

func (s InboundStatus) Valid() bool {
	switch s {
	case InboundStatusCreated, InboundStatusReadyForReceiving, InboundStatusReceiving,
		InboundStatusReceived, InboundStatusCancelled, InboundStatusProblem, InboundStatusMisSort:
		return true
	}
	return false
}

// Terminal reports whether no further receiving may happen on the order.
func (s InboundStatus) Terminal() bool {
	return s == InboundStatusReceived || s == InboundStatusCancelled
}

// AcceptsReceiving reports whether receive/close_tare events are legal for the
// order. Problem and mis_sort are annotations on an order that is still being
// received, so they accept events too.
func (s InboundStatus) AcceptsReceiving() bool {
	switch s {
	case InboundStatusReceiving, InboundStatusProblem, InboundStatusMisSort:
		return true
	}
	return false
}

// NormalizeInboundStatus maps the deprecated status vocabulary onto the
// canonical one. Unknown values pass through so validation can reject them.
func NormalizeInboundStatus(raw string) InboundStatus {
	switch raw {
	case "draft":
		return InboundStatusCreated
	case "in_progress":
		return InboundStatusReceiving
	case "completed":
		return InboundStatusReceived
	default:
		return InboundStatus(raw)
	}
}

// LineStatus is the per-line reconciliation outcome.
type LineStatus string

const (
	LineStatusOpen              LineStatus = "open"
	LineStatusPartiallyReceived LineStatus = "partially_received"
	LineStatusFullyReceived     LineStatus = "fully_received"
	LineStatusOverReceived      LineStatus = "over_received"
	LineStatusCancelled         LineStatus = "cancelled"
	LineStatusMisSort           LineStatus = "mis_sort"
)

// Settled reports whether the line no longer blocks order completion.
func (s LineStatus) Settled() bool {
	switch s {
	case LineStatusFullyReceived, LineStatusOverReceived, LineStatusCancelled:
		return true
	}
	return false
}

// ReceiveCondition annotates the physical state of received goods.
type ReceiveCondition string

const (
	ConditionGood       ReceiveCondition = "good"
	ConditionDefect     ReceiveCondition = "defect"
	ConditionQuarantine ReceiveCondition = "quarantine"
)

func (c ReceiveCondition) Valid() bool {
	switch c {
	case ConditionGood, ConditionDefect, ConditionQuarantine:
		return true
	}
	return false
}

type InboundOrder struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	ExternalNumber string              `json:"external_number" db:"external_number"`
	WarehouseID    uuid.UUID           `json:"warehouse_id" db:"warehouse_id"`
	Status         InboundStatus       `json:"status" db:"status"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" db:"updated_at"`
	Lines          []*InboundOrderLine `json:"lines"`
}

type InboundOrderLine struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OrderID     uuid.UUID  `json:"order_id" db:"order_id"`
	ItemID      uuid.UUID  `json:"item_id" db:"item_id"`
	ExpectedQty int        `json:"expected_qty" db:"expected_qty"`
	ReceivedQty int        `json:"received_qty" db:"received_qty"`
	LocationID  *uuid.UUID `json:"location_id" db:"location_id"`
	LineStatus  LineStatus `json:"line_status" db:"line_status"`
}

// InboundReceipt is the persisted record of one receive event. Line received
// quantities are always reconstructible as the sum of receipts for the line.
type InboundReceipt struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	OrderID   uuid.UUID         `json:"order_id" db:"order_id"`
	LineID    uuid.UUID         `json:"line_id" db:"line_id"`
	TareID    uuid.UUID         `json:"tare_id" db:"tare_id"`
	ItemID    uuid.UUID         `json:"item_id" db:"item_id"`
	Quantity  int               `json:"quantity" db:"quantity"`
	Condition *ReceiveCondition `json:"condition" db:"condition"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}

// ReceiveTarget resolves a receive event to a line either directly by line id
// or by the item expected on the order. Exactly one of the two is set.
type ReceiveTarget struct {
	LineID *uuid.UUID
	ItemID *uuid.UUID
}

func (t ReceiveTarget) Valid() bool {
	return (t.LineID != nil) != (t.ItemID != nil)
}
