package domain

import "time"

// ItemStatus represents the lifecycle state of an e-waste item.
type ItemStatus string

const (
	StatusReported  ItemStatus = "reported"
	StatusCollected ItemStatus = "collected"
	StatusInTransit ItemStatus = "in-transit"
	StatusRecycled  ItemStatus = "recycled"
	StatusDisposed  ItemStatus = "disposed"
)

// settableStatuses are the statuses a caller may move an item into.
// reported is only ever assigned at creation.
var settableStatuses = map[ItemStatus]struct{}{
	StatusCollected: {},
	StatusInTransit: {},
	StatusRecycled:  {},
	StatusDisposed:  {},
}

// Valid reports whether s is one of the known lifecycle states.
func (s ItemStatus) Valid() bool {
	if s == StatusReported {
		return true
	}
	_, ok := settableStatuses[s]
	return ok
}

// Settable reports whether s can be applied through a status update.
func (s ItemStatus) Settable() bool {
	_, ok := settableStatuses[s]
	return ok
}

// Terminal reports whether s ends the lifecycle.
func (s ItemStatus) Terminal() bool {
	return s == StatusRecycled || s == StatusDisposed
}

// Category classifies a reported item.
type Category string

const (
	CategoryLaptop  Category = "Laptop"
	CategoryMobile  Category = "Mobile"
	CategoryBattery Category = "Battery"
	CategoryMonitor Category = "Monitor"
	CategoryOther   Category = "Other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryLaptop, CategoryMobile, CategoryBattery, CategoryMonitor, CategoryOther}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StatusHistoryEntry records a single status transition on an item.
// Entries are only ever appended.
type StatusHistoryEntry struct {
	Status    ItemStatus `json:"status"`
	UpdatedBy string     `json:"updatedBy"`
	Timestamp time.Time  `json:"timestamp"`
}

// EwasteItem is the core aggregate root.
type EwasteItem struct {
	ID            string               `json:"id"`
	ItemName      string               `json:"itemName"`
	Description   string               `json:"description,omitempty"`
	Category      Category             `json:"category"`
	WeightKg      *float64             `json:"weightKg,omitempty"`
	LookupCode    string               `json:"lookupCode"`
	ReportedBy    string               `json:"reportedBy"`
	Status        ItemStatus           `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
