package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// RankingService produces the cross-user ranking views.
//
// Ordering contract: descending by the chosen metric, ties broken by
// ascending user id. The sort always runs over a fresh user snapshot; Redis
// only caches the already-ordered result.
type RankingService struct {
	users ports.UserRepository
	cache RankingCache // optional
	log   zerolog.Logger
}

func NewRankingService(users ports.UserRepository, cache RankingCache, log zerolog.Logger) *RankingService {
	return &RankingService{users: users, cache: cache, log: log}
}

// Rankings returns all users ordered by metric.
func (s *RankingService) Rankings(ctx context.Context, metric ports.Metric) ([]ports.RankedUser, error) {
	if !ports.IsValidMetric(metric) {
		return nil, fmt.Errorf("rankings: unsupported metric %q", metric)
	}

	if s.cache != nil {
		rows, ok, err := s.cache.Get(ctx, metric)
		if err != nil {
			s.log.Warn().Err(err).Str("metric", string(metric)).Msg("ranking cache read failed, falling back to store")
		} else if ok {
			return rows, nil
		}
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("rankings: list users: %w", err)
	}

	value := func(u *domain.User) int {
		if metric == ports.MetricWords {
			return u.TotalWords
		}
		return u.TotalTraces
	}

	sort.SliceStable(users, func(i, j int) bool {
		if value(users[i]) != value(users[j]) {
			return value(users[i]) > value(users[j])
		}
		return users[i].ID < users[j].ID
	})

	rows := make([]ports.RankedUser, len(users))
	for i, u := range users {
		rows[i] = ports.RankedUser{
			Position:        i + 1,
			UserID:          u.ID,
			Signature:       u.Signature,
			FullName:        u.FullName,
			Rank:            u.Rank,
			Medal:           u.Medal(),
			TotalTraces:     u.TotalTraces,
			TotalWords:      u.TotalWords,
			TotalActivities: u.TotalActivities,
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, metric, rows); err != nil {
			s.log.Warn().Err(err).Str("metric", string(metric)).Msg("ranking cache write failed")
		}
	}

	return rows, nil
}

// Position returns the 1-based position of userID under metric. A user
// absent from the view yields domain.ErrUserNotRanked, never position 0.
func (s *RankingService) Position(ctx context.Context, userID int64, metric ports.Metric) (int, error) {
	rows, err := s.Rankings(ctx, metric)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if row.UserID == userID {
			return row.Position, nil
		}
	}
	return 0, domain.ErrUserNotRanked
}
