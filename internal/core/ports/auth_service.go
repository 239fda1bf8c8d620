package ports

import (
	"context"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

// LocationInput carries the raw vendor location as submitted.
type LocationInput struct {
	Coordinates []float64
}

// WorkingHoursInput carries the raw vendor working window as submitted.
type WorkingHoursInput struct {
	Start string
	End   string
}

// RegisterInput is the DTO passed from the transport layer to AuthService.
// Pointer fields are nil when the caller omitted them.
type RegisterInput struct {
	Role     string
	Email    string
	Password string
	WhatsApp string

	// admin
	Name       string
	Department string

	// vendor
	Address          string
	Location         *LocationInput
	ServiceRadiusKm  *float64
	CapacityKgPerDay *float64
	WorkingHours     *WorkingHoursInput
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// LoginThrottle limits repeated login attempts per key (the normalised email).
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
