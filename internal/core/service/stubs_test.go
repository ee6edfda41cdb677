package service

import (
	"context"
	"sort"
	"time"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[int64]*domain.User
	nextID      int64
	insertErr   error // if set, Insert returns this error
	findErr     error // if set, FindByID returns this error
	updateCalls int   // UpdateStats invocations
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	for _, existing := range r.users {
		if existing.Signature == u.Signature {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindBySignature(_ context.Context, signature string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Signature == signature {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateStats(_ context.Context, id int64, traces, words, activities int) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.updateCalls++
	u.TotalTraces = traces
	u.TotalWords = words
	u.TotalActivities = activities
	return nil
}

func (r *stubUserRepo) UpdateRank(_ context.Context, id int64, rank domain.Rank) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Rank = rank
	return nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	// Map iteration order is random; return a stable input so the sort under
	// test is the only ordering in play.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// seed adds a user directly, bypassing Insert.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = u
	return u
}

type stubActivityRepo struct {
	activities map[int64]*domain.Activity
	nextID     int64
	listErr    error // if set, ListByOwner returns this error
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{activities: make(map[int64]*domain.Activity)}
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) (*domain.Activity, error) {
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	clone.CreatedAt = time.Now().UTC()
	r.activities[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubActivityRepo) FindByID(_ context.Context, id int64) (*domain.Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubActivityRepo) Update(_ context.Context, a *domain.Activity) error {
	if _, ok := r.activities[a.ID]; !ok {
		return domain.ErrActivityNotFound
	}
	clone := *a
	r.activities[a.ID] = &clone
	return nil
}

func (r *stubActivityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.activities[id]; !ok {
		return domain.ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

func (r *stubActivityRepo) ListByOwner(_ context.Context, userID int64) ([]*domain.Activity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []*domain.Activity{}
	for _, a := range r.activities {
		if a.UserID == userID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubBonusRepo struct {
	awards []*domain.BonusAward
	nextID int64
}

func newStubBonusRepo() *stubBonusRepo {
	return &stubBonusRepo{}
}

func (r *stubBonusRepo) Insert(_ context.Context, b *domain.BonusAward) (*domain.BonusAward, error) {
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.awards = append(r.awards, &clone)
	out := clone
	return &out, nil
}

func (r *stubBonusRepo) SumForUser(_ context.Context, userID int64) (int, error) {
	total := 0
	for _, b := range r.awards {
		if b.UserID == userID {
			total += b.Amount
		}
	}
	return total, nil
}

func (r *stubBonusRepo) ListByUser(_ context.Context, userID int64) ([]*domain.BonusAward, error) {
	out := []*domain.BonusAward{}
	for _, b := range r.awards {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubRankingCache records invalidations and can serve a canned snapshot.
type stubRankingCache struct {
	rows        map[ports.Metric][]ports.RankedUser
	invalidated int
	sets        int
	getErr      error
}

func newStubRankingCache() *stubRankingCache {
	return &stubRankingCache{rows: make(map[ports.Metric][]ports.RankedUser)}
}

func (c *stubRankingCache) Get(_ context.Context, metric ports.Metric) ([]ports.RankedUser, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	rows, ok := c.rows[metric]
	return rows, ok, nil
}

func (c *stubRankingCache) Set(_ context.Context, metric ports.Metric, rows []ports.RankedUser) error {
	c.sets++
	c.rows[metric] = rows
	return nil
}

func (c *stubRankingCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.rows = make(map[ports.Metric][]ports.RankedUser)
	return nil
}

// stubResyncQueue records enqueued user ids.
type stubResyncQueue struct {
	enqueued []int64
}

func (q *stubResyncQueue) Enqueue(userID int64) {
	q.enqueued = append(q.enqueued, userID)
}

// failingStats always fails Resync, for exercising the retry path.
type failingStats struct {
	err error
}

func (s *failingStats) Resync(context.Context, int64) error { return s.err }
func (s *failingStats) ResyncAll(context.Context) (int, error) {
	return 0, s.err
}

var _ ports.UserRepository = (*stubUserRepo)(nil)
var _ ports.ActivityRepository = (*stubActivityRepo)(nil)
var _ ports.BonusRepository = (*stubBonusRepo)(nil)
var _ RankingCache = (*stubRankingCache)(nil)
var _ ports.StatsService = (*failingStats)(nil)
