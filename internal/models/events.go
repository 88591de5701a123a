package models

import "time"

// Event types
const (
	EventTypeOrderSubmitted      = "ORDER_SUBMITTED"
	EventTypeOrderPendingOffline = "ORDER_PENDING_OFFLINE"
	EventTypeOrderReconciled     = "ORDER_RECONCILED"
	EventTypeOrderFailed         = "ORDER_FAILED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSubmittedEvent published when an order is confirmed online
type OrderSubmittedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	Urgency   string `json:"urgency"`
	ItemCount int    `json:"item_count"`
	IsPackage bool   `json:"is_package"`
}

// OrderPendingOfflineEvent published when the offline fallback produced a
// local acknowledgment that still awaits reconciliation
type OrderPendingOfflineEvent struct {
	BaseEvent
	LocalID   string `json:"local_id"`
	Urgency   string `json:"urgency"`
	ItemCount int    `json:"item_count"`
	IsPackage bool   `json:"is_package"`
}

// OrderReconciledEvent published when a pending offline order was accepted
// by the server during a reconciliation pass
type OrderReconciledEvent struct {
	BaseEvent
	LocalID string `json:"local_id"`
	OrderID string `json:"order_id"`
}

// OrderFailedEvent published when both submission modes failed or the
// server rejected the order outright
type OrderFailedEvent struct {
	BaseEvent
	LocalID string `json:"local_id,omitempty"`
	Reason  string `json:"reason"`
}
