package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// RankingCache abstracts the Redis-backed ranking snapshot store. The stats
// service only ever invalidates it; the ranking service reads and fills it.
type RankingCache interface {
	Get(ctx context.Context, metric ports.Metric) ([]ports.RankedUser, bool, error)
	Set(ctx context.Context, metric ports.Metric, rows []ports.RankedUser) error
	Invalidate(ctx context.Context) error
}

// StatsService is the user statistics aggregator. The stored totals are a
// cache: every resync recomputes them from a fresh snapshot of the user's
// activity set plus the sum of granted bonuses, making each resync
// self-correcting regardless of how concurrent writes interleave.
type StatsService struct {
	users      ports.UserRepository
	activities ports.ActivityRepository
	bonuses    ports.BonusRepository
	cache      RankingCache // optional
	log        zerolog.Logger
}

func NewStatsService(
	users ports.UserRepository,
	activities ports.ActivityRepository,
	bonuses ports.BonusRepository,
	cache RankingCache,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		users:      users,
		activities: activities,
		bonuses:    bonuses,
		cache:      cache,
		log:        log,
	}
}

// Resync overwrites the user's totals from their current activity set.
// Bonus awards are folded into the trace total so a resync never erases a
// previously granted bonus. A user with zero activities resolves to all-zero
// totals. A missing user is logged and swallowed: the resync runs as a side
// effect of unrelated operations and must never cascade-fail its caller.
func (s *StatsService) Resync(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Int64("user_id", userID).Msg("resync requested for missing user, skipping")
			return nil
		}
		return fmt.Errorf("resync user %d: %w", userID, err)
	}

	activities, err := s.activities.ListByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("resync user %d: load activities: %w", userID, err)
	}

	traces, words := 0, 0
	for _, a := range activities {
		traces += a.Traces
		words += a.WordCount
	}

	bonus, err := s.bonuses.SumForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("resync user %d: sum bonuses: %w", userID, err)
	}
	traces += bonus

	if err := s.users.UpdateStats(ctx, userID, traces, words, len(activities)); err != nil {
		return fmt.Errorf("resync user %d: write totals: %w", userID, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate ranking cache after resync")
		}
	}

	s.log.Debug().
		Int64("user_id", userID).
		Int("total_traces", traces).
		Int("total_words", words).
		Int("total_activities", len(activities)).
		Msg("user stats resynced")

	return nil
}

// ResyncAll refreshes every known user. Per-user failures are logged and the
// loop continues; the returned count covers only successful resyncs.
func (s *StatsService) ResyncAll(ctx context.Context) (int, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("resync all: list users: %w", err)
	}

	refreshed := 0
	for _, u := range users {
		if err := s.Resync(ctx, u.ID); err != nil {
			s.log.Error().Err(err).Int64("user_id", u.ID).Msg("bulk resync: user failed")
			continue
		}
		refreshed++
	}

	s.log.Info().Int("refreshed", refreshed).Int("total", len(users)).Msg("bulk resync finished")
	return refreshed, nil
}
