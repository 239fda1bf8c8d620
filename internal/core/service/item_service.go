package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ItemService struct {
	repo     ports.ItemRepository
	codes    ports.CodeGenerator
	renderer ports.CodeRenderer
	logger   zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, codes ports.CodeGenerator, renderer ports.CodeRenderer, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, codes: codes, renderer: renderer, logger: logger}
}

// CreateItem records a newly reported item, assigns it a lookup code and
// renders the code as a scannable image.
func (s *ItemService) CreateItem(ctx context.Context, input ports.CreateItemInput) (*ports.CreateItemResult, error) {
	name := strings.TrimSpace(input.ItemName)
	if name == "" {
		return nil, domain.Required("itemName")
	}
	if input.Category == "" {
		return nil, domain.Required("category")
	}
	category := domain.Category(input.Category)
	if !category.Valid() {
		return nil, domain.Invalid("category", "category must be one of: %s", joinCategories())
	}
	if input.WeightKg != nil && *input.WeightKg < 0 {
		return nil, domain.Invalid("weightKg", "weightKg must be at least 0")
	}
	if input.Actor.UserID == "" {
		return nil, domain.Required("reportedBy")
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate lookup code: %w", err)
	}
	image, err := s.renderer.Render(code)
	if err != nil {
		return nil, fmt.Errorf("render lookup code: %w", err)
	}

	now := time.Now().UTC()
	item := &domain.EwasteItem{
		ItemName:    name,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		WeightKg:    input.WeightKg,
		LookupCode:  code,
		ReportedBy:  input.Actor.UserID,
		Status:      domain.StatusReported,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusReported, UpdatedBy: input.Actor.UserID, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn().Str("lookup_code", code).Msg("lookup code collision")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create item")
		return nil, err
	}

	s.logger.Info().
		Str("item_id", item.ID).
		Str("lookup_code", code).
		Str("reported_by", item.ReportedBy).
		Msg("item registered")

	return &ports.CreateItemResult{Item: item, LookupCode: code, QRCodeImage: image}, nil
}

func (s *ItemService) GetItem(ctx context.Context, id string) (*domain.EwasteItem, error) {
	return s.repo.FindByID(ctx, id)
}

// ListItems returns a page of items. Page defaults to 1 and limit to 20,
// capped at 100.
func (s *ItemService) ListItems(ctx context.Context, input ports.ListItemsInput) (*ports.ListItemsResult, error) {
	if input.Status != "" && !domain.ItemStatus(input.Status).Valid() {
		return nil, domain.Invalid("status", "invalid status")
	}
	if input.Category != "" && !domain.Category(input.Category).Valid() {
		return nil, domain.Invalid("category", "category must be one of: %s", joinCategories())
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListItemsFilter{
		Status:     input.Status,
		Category:   input.Category,
		ReportedBy: input.ReportedBy,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list items")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListItemsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func joinCategories() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
