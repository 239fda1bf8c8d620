package ports

import (
	"context"
	"time"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

// CreateItemInput carries all data needed to report a new item.
type CreateItemInput struct {
	ItemName    string
	Description string
	Category    string
	WeightKg    *float64
	Actor       domain.Principal
}

// CreateItemResult is returned by the registry after creating an item.
// LookupCode and QRCodeImage are returned separately from the item so callers
// can store or transmit them independently.
type CreateItemResult struct {
	Item        *domain.EwasteItem
	LookupCode  string
	QRCodeImage string
}

// ListItemsInput carries all parameters for the list endpoint.
type ListItemsInput struct {
	Status     string
	Category   string
	ReportedBy string
	Page       int
	Limit      int
}

// ListItemsResult is returned by ListItems.
type ListItemsResult struct {
	Items      []*domain.EwasteItem
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReporterPublic is the subset of a user that may be shown next to an item.
type ReporterPublic struct {
	ID    string
	Name  string
	Email string
}

// ItemDetail is the item resolved by lookup code, with its reporter inlined.
type ItemDetail struct {
	Item     *domain.EwasteItem
	Reporter *ReporterPublic // nil when the reporter no longer resolves
}

// UpdateStatusInput carries a status change request.
type UpdateStatusInput struct {
	ItemID string
	Status string
	Actor  domain.Principal
}

// ItemService is the item registry: creation and browsing.
type ItemService interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*CreateItemResult, error)
	GetItem(ctx context.Context, id string) (*domain.EwasteItem, error)
	ListItems(ctx context.Context, input ListItemsInput) (*ListItemsResult, error)
}

// LookupService resolves scanned lookup codes.
type LookupService interface {
	FindByCode(ctx context.Context, code string) (*ItemDetail, error)
}

// LifecycleService applies status transitions and exposes the audit trail.
type LifecycleService interface {
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.EwasteItem, error)
	History(ctx context.Context, itemID string) ([]domain.StatusHistoryEntry, error)
}

// CodeGenerator produces globally unique lookup codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeRenderer turns a lookup code into an embeddable scannable image.
type CodeRenderer interface {
	Render(code string) (string, error)
}

// StatusChangedEvent is emitted after a status update has been persisted.
type StatusChangedEvent struct {
	ItemID     string            `json:"itemId"`
	LookupCode string            `json:"lookupCode"`
	From       domain.ItemStatus `json:"from"`
	To         domain.ItemStatus `json:"to"`
	UpdatedBy  string            `json:"updatedBy"`
	Timestamp  time.Time         `json:"timestamp"`
}

// StatusPublisher notifies downstream consumers of status changes.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
