package ports

import (
	"context"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

// UserRepository defines persistence for admins and vendors.
type UserRepository interface {
	// Create stores a new user and returns it with its assigned ID.
	// A duplicate email yields domain.ErrEmailInUse.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail expects an already normalised (lower-case, trimmed) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
