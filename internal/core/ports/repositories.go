package ports

import (
	"context"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// ActivityRepository defines persistence operations for activities.
type ActivityRepository interface {
	// Insert persists a new activity, assigning its id and created_at.
	Insert(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	FindByID(ctx context.Context, id int64) (*domain.Activity, error)
	// Update rewrites the mutable fields of an existing activity.
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id int64) error
	// ListByOwner returns every activity owned by userID. The aggregator
	// relies on this being a fresh snapshot read, never a cached delta.
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Activity, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Insert persists a new user, assigning its id. Returns
	// domain.ErrUserExists when the signature is already taken.
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindBySignature(ctx context.Context, signature string) (*domain.User, error)
	// UpdateStats overwrites the three aggregate totals of a user.
	UpdateStats(ctx context.Context, id int64, traces, words, activities int) error
	UpdateRank(ctx context.Context, id int64, rank domain.Rank) error
	ListAll(ctx context.Context) ([]*domain.User, error)
}

// BonusRepository defines persistence operations for bonus awards.
type BonusRepository interface {
	Insert(ctx context.Context, b *domain.BonusAward) (*domain.BonusAward, error)
	// SumForUser returns the total granted bonus amount for a user.
	SumForUser(ctx context.Context, userID int64) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.BonusAward, error)
}
