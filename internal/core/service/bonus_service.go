package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
	"github.com/ineludible/trazos-api/internal/core/trace"
)

// BonusService records one-off trace grants. Grants are persisted as
// BonusAward rows and surfaced through a resync rather than by mutating the
// user's counter directly, so there is exactly one writer of totalTraces.
type BonusService struct {
	users   ports.UserRepository
	bonuses ports.BonusRepository
	stats   ports.StatsService
	calc    *trace.Calculator
	log     zerolog.Logger
}

func NewBonusService(
	users ports.UserRepository,
	bonuses ports.BonusRepository,
	stats ports.StatsService,
	calc *trace.Calculator,
	log zerolog.Logger,
) *BonusService {
	return &BonusService{users: users, bonuses: bonuses, stats: stats, calc: calc, log: log}
}

// GrantBulk grants a fixed amount to each listed user. The amount defaults
// to the category's table value and may be overridden. Missing users are
// logged and skipped; one bad id must not abort the whole grant.
func (s *BonusService) GrantBulk(ctx context.Context, in ports.BulkGrantInput) ([]*domain.BonusAward, error) {
	amount := in.Amount
	if amount <= 0 {
		amount = s.calc.BonusTraces(in.Category)
	}

	verr := &domain.ValidationError{}
	if len(in.UserIDs) == 0 {
		verr.Add("user_ids", "at least one user is required")
	}
	if amount <= 0 {
		verr.Add("amount", fmt.Sprintf("no amount given and category %q has none", in.Category))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	now := time.Now().UTC()
	granted := make([]*domain.BonusAward, 0, len(in.UserIDs))
	for _, userID := range in.UserIDs {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				s.log.Warn().Int64("user_id", userID).Msg("bulk grant: user not found, skipping")
				continue
			}
			return granted, fmt.Errorf("bulk grant: user %d: %w", userID, err)
		}

		award := &domain.BonusAward{
			UserID:    userID,
			Amount:    amount,
			Category:  in.Category,
			Reason:    in.Reason,
			GrantedBy: in.GrantedBy,
			CreatedAt: now,
		}
		created, err := s.bonuses.Insert(ctx, award)
		if err != nil {
			return granted, fmt.Errorf("bulk grant: user %d: %w", userID, err)
		}
		granted = append(granted, created)

		if err := s.stats.Resync(ctx, userID); err != nil {
			s.log.Error().Err(err).Int64("user_id", userID).Msg("resync after bonus grant failed")
		}
	}

	s.log.Info().
		Int("granted", len(granted)).
		Str("category", in.Category).
		Int("amount", amount).
		Msg("bulk bonus granted")

	return granted, nil
}

// HistoryFor returns the user's bonus history, newest first.
func (s *BonusService) HistoryFor(ctx context.Context, userID int64) ([]*domain.BonusAward, error) {
	return s.bonuses.ListByUser(ctx, userID)
}
