package models

import "time"

// ResourceItem is a unit of aid from the catalog. Quantity is meaningful
// only once the item sits inside a relief package; the catalog's canonical
// record carries an implicit 1.
type ResourceItem struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Status   string `db:"status" json:"status"`
	Details  string `db:"details" json:"details,omitempty"`
	Location string `db:"location" json:"location,omitempty"`
	Contact  string `db:"contact" json:"contact,omitempty"`
	Quantity int    `db:"-" json:"quantity,omitempty"`
}

// Resource availability statuses
const (
	StatusAvailable = "available"
	StatusLimited   = "limited"
	StatusLow       = "low"
	StatusUnknown   = "unknown"
)

// PackageEntry is a ResourceItem inside a relief package with a
// package-local quantity, always within [1, MaxQuantity].
type PackageEntry struct {
	ResourceItem
	Quantity int `json:"quantity"`
}

// MaxQuantity is the per-entry quantity ceiling; it keeps a single request
// from ballooning past what the display and payment steps can handle.
const MaxQuantity = 10

// CustomKit is a named snapshot of a package. The snapshot is copied on
// save and never mutated afterwards.
type CustomKit struct {
	Name      string         `json:"name"`
	Resources []PackageEntry `json:"resources"`
	SavedAt   time.Time      `json:"saved_at"`
}

// PaymentInfo retains only the demo-card surface of what the form captured.
// The full card number never reaches the pipeline.
type PaymentInfo struct {
	CardLast4 string `json:"card_last4"`
	Type      string `json:"type"`
}

// OrderRequest is the assembled submission payload.
type OrderRequest struct {
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email,omitempty"`
	Urgency   string         `json:"urgency"`
	Payment   PaymentInfo    `json:"payment"`
	Items     []PackageEntry `json:"items"`
	IsPackage bool           `json:"is_package"`
	Timestamp string         `json:"timestamp"`
}

// Urgency levels
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// OrderResult is what a submission resolves to. Pending is true for
// offline acknowledgments that still await server confirmation.
type OrderResult struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Pending   bool      `json:"pending"`
	Urgency   string    `json:"urgency"`
	ItemCount int       `json:"item_count"`
	IsPackage bool      `json:"is_package"`
	CreatedAt time.Time `json:"created_at"`
}

// Order statuses
const (
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPending   = "PENDING"
	OrderStatusFailed    = "FAILED"
)
