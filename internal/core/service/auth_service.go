package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenIssuer
	throttle   ports.LoginThrottle
	bcryptCost int
	log        zerolog.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths pay the same bcrypt cost.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

// NewAuthService wires the identity store. throttle may be nil to disable
// login throttling.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, throttle ports.LoginThrottle, cfg AuthConfig, log zerolog.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("ewaste-login-placeholder"), cost)
	if err != nil {
		log.Warn().Err(err).Msg("failed to build placeholder hash")
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		throttle:   throttle,
		bcryptCost: cost,
		log:        log,
		dummyHash:  dummy,
		compare:    bcrypt.CompareHashAndPassword,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	role := domain.Role(in.Role)
	if !role.Valid() {
		return nil, domain.Invalid("role", "invalid or missing role")
	}

	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.Required("email")
	}
	if in.Password == "" {
		return nil, domain.Required("password")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Role:      role,
		Email:     email,
		WhatsApp:  in.WhatsApp,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch role {
	case domain.RoleAdmin:
		profile, err := validateAdmin(in)
		if err != nil {
			return nil, err
		}
		user.Admin = profile
	case domain.RoleVendor:
		profile, err := validateVendor(in)
		if err != nil {
			return nil, err
		}
		user.Vendor = profile
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.Invalid("password", "password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return &ports.AuthResult{User: created, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.Required("email")
	}
	if password == "" {
		return nil, domain.Required("password")
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if s.dummyHash != nil {
				_ = s.compare(s.dummyHash, []byte(password))
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.compare([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}
