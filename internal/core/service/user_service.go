package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// UserService exposes profile reads and the admin-only mutations on users.
type UserService struct {
	users   ports.UserRepository
	bonuses ports.BonusRepository
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, bonuses ports.BonusRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, bonuses: bonuses, log: log}
}

// Profile returns the user with derived medal and bonus history.
func (s *UserService) Profile(ctx context.Context, userID int64) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.bonuses.ListByUser(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("could not load bonus history")
		history = nil
	}

	return &ports.UserProfile{
		User:         user,
		Medal:        user.Medal(),
		BonusHistory: history,
	}, nil
}

// SetRank assigns a rank by explicit admin action. Ranks are never
// recomputed from trace totals.
func (s *UserService) SetRank(ctx context.Context, userID int64, rank domain.Rank) (*domain.User, error) {
	if !domain.IsValidRank(rank) {
		verr := &domain.ValidationError{}
		verr.Add("rank", fmt.Sprintf("unknown rank %q", rank))
		return nil, verr
	}

	if err := s.users.UpdateRank(ctx, userID, rank); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", userID).Str("rank", string(rank)).Msg("rank assigned")
	return s.users.FindByID(ctx, userID)
}
