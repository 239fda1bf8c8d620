package ports

import (
	"context"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

// ListItemsFilter carries all query parameters for listing items.
type ListItemsFilter struct {
	Status     string // optional
	Category   string // optional
	ReportedBy string // optional: user id
	Page       int    // 1-based
	Limit      int
}

// ItemRepository defines persistence operations for e-waste items.
type ItemRepository interface {
	// Create inserts the item and sets its ID. A lookup code that already
	// exists yields domain.ErrLookupCodeCollision.
	Create(ctx context.Context, item *domain.EwasteItem) error
	FindByID(ctx context.Context, id string) (*domain.EwasteItem, error)
	FindByLookupCode(ctx context.Context, code string) (*domain.EwasteItem, error)
	// AppendStatus atomically sets the item's status and pushes entry onto
	// its history, returning the updated item. A non-empty from makes the
	// write conditional on the current status; when it no longer matches the
	// result is domain.ErrInvalidTransition.
	AppendStatus(ctx context.Context, id string, from domain.ItemStatus, entry domain.StatusHistoryEntry) (*domain.EwasteItem, error)
	// List returns a page of items matching filter and the total count.
	List(ctx context.Context, filter ListItemsFilter) ([]*domain.EwasteItem, int64, error)
}
