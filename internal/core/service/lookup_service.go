package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// LookupService resolves a scanned lookup code to its item. It never writes.
type LookupService struct {
	items  ports.ItemRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewLookupService(items ports.ItemRepository, users ports.UserRepository, logger zerolog.Logger) *LookupService {
	return &LookupService{items: items, users: users, logger: logger}
}

func (s *LookupService) FindByCode(ctx context.Context, code string) (*ports.ItemDetail, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrItemNotFound
	}

	item, err := s.items.FindByLookupCode(ctx, code)
	if err != nil {
		return nil, err
	}

	detail := &ports.ItemDetail{Item: item}

	reporter, err := s.users.FindByID(ctx, item.ReportedBy)
	switch {
	case err == nil:
		detail.Reporter = &ports.ReporterPublic{
			ID:    reporter.ID,
			Name:  reporter.DisplayName(),
			Email: reporter.Email,
		}
	case errors.Is(err, domain.ErrUserNotFound):
		s.logger.Debug().Str("item_id", item.ID).Str("reported_by", item.ReportedBy).Msg("reporter no longer exists")
	default:
		return nil, fmt.Errorf("resolve reporter: %w", err)
	}

	return detail, nil
}
