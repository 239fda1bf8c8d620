package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// LifecycleService moves items through their statuses. Every accepted change
// is appended to the item's history; nothing ever rewrites an entry.
type LifecycleService struct {
	repo      ports.ItemRepository
	policy    domain.TransitionPolicy
	publisher ports.StatusPublisher
	logger    zerolog.Logger
}

// NewLifecycleService builds the engine. A nil policy means permissive and a
// nil publisher disables notifications.
func NewLifecycleService(repo ports.ItemRepository, policy domain.TransitionPolicy, publisher ports.StatusPublisher, logger zerolog.Logger) *LifecycleService {
	if policy == nil {
		policy = domain.PermissivePolicy{}
	}
	return &LifecycleService{repo: repo, policy: policy, publisher: publisher, logger: logger}
}

func (s *LifecycleService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.EwasteItem, error) {
	next := domain.ItemStatus(input.Status)
	if !next.Settable() {
		return nil, domain.Invalid("status", "invalid status")
	}

	item, err := s.repo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allow(item.Status, next) {
		s.logger.Warn().
			Str("item_id", item.ID).
			Str("from", string(item.Status)).
			Str("to", string(next)).
			Str("policy", s.policy.Name()).
			Msg("transition rejected")
		return nil, domain.ErrInvalidTransition
	}

	entry := domain.StatusHistoryEntry{
		Status:    next,
		UpdatedBy: input.Actor.UserID,
		Timestamp: time.Now().UTC(),
	}

	var expected domain.ItemStatus
	if s.policy.Guarded() {
		expected = item.Status
	}

	updated, err := s.repo.AppendStatus(ctx, item.ID, expected, entry)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Warn().
				Str("item_id", item.ID).
				Str("expected", string(expected)).
				Str("to", string(next)).
				Msg("status changed concurrently")
			return nil, err
		}
		s.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to update status")
		return nil, err
	}

	s.logger.Info().
		Str("item_id", updated.ID).
		Str("from", string(item.Status)).
		Str("to", string(next)).
		Str("updated_by", entry.UpdatedBy).
		Msg("status updated")

	if s.publisher != nil {
		event := ports.StatusChangedEvent{
			ItemID:     updated.ID,
			LookupCode: updated.LookupCode,
			From:       item.Status,
			To:         next,
			UpdatedBy:  entry.UpdatedBy,
			Timestamp:  entry.Timestamp,
		}
		// the change is already persisted; a failed notification is not an error
		if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("item_id", updated.ID).Msg("failed to publish status change")
		}
	}

	return updated, nil
}

// History returns the item's status trail, oldest first.
func (s *LifecycleService) History(ctx context.Context, itemID string) ([]domain.StatusHistoryEntry, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item.StatusHistory, nil
}
