package ports

import (
	"context"
	"time"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// ActivityInput carries all scoring-relevant and descriptive fields of an
// activity submission. Internal components only ever see this shape after it
// has passed the lifecycle manager's validation boundary.
type ActivityInput struct {
	Name        string
	Description string
	Date        time.Time
	Link        string
	ImageURL    string
	Type        domain.ActivityType
	Arista      string
	Album       string
	WordCount   int
	Responses   int
}

// ActivityResult is returned by create and update. Owner holds the owning
// user with freshly resynced totals; it is nil when the resync was deferred
// to the retry queue.
type ActivityResult struct {
	Activity *domain.Activity
	Owner    *domain.User
}

// ActivityService orchestrates the lifecycle of an activity: validation,
// trace computation, persistence, and the owner's stats resync.
type ActivityService interface {
	Create(ctx context.Context, ownerID int64, in ActivityInput) (*ActivityResult, error)
	Update(ctx context.Context, activityID, requesterID int64, in ActivityInput) (*ActivityResult, error)
	Delete(ctx context.Context, activityID, requesterID int64) error
	Get(ctx context.Context, activityID int64) (*domain.Activity, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Activity, error)
	// Preview returns the trace award the submission form would earn,
	// without persisting anything.
	Preview(t domain.ActivityType, wordCount, responses int) int
}
