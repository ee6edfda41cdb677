package ports

import (
	"context"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// BulkGrantInput carries an admin bulk trace assignment: a fixed amount per
// user, recorded as a BonusAward for each, never recomputed by the
// aggregator's activity sum.
type BulkGrantInput struct {
	UserIDs  []int64
	Category string
	// Amount overrides the category's table amount when positive.
	Amount    int
	Reason    string
	GrantedBy int64
}

// BonusService grants one-off trace awards and exposes a user's bonus
// history.
type BonusService interface {
	GrantBulk(ctx context.Context, in BulkGrantInput) ([]*domain.BonusAward, error)
	HistoryFor(ctx context.Context, userID int64) ([]*domain.BonusAward, error)
}

// UserService exposes profile reads and the admin-only mutations on users.
type UserService interface {
	// Profile returns the user together with their bonus history.
	Profile(ctx context.Context, userID int64) (*UserProfile, error)
	// SetRank assigns a rank. Ranks are admin-assigned, never derived from
	// totals.
	SetRank(ctx context.Context, userID int64, rank domain.Rank) (*domain.User, error)
}

// UserProfile is the full user view returned by Profile.
type UserProfile struct {
	User         *domain.User
	Medal        string
	BonusHistory []*domain.BonusAward
}
