package ports

import "context"

// StatsService recomputes a user's aggregate totals from their full activity
// set plus granted bonuses. The activity collection is the source of truth;
// the totals stored on the user are only ever a cache of this recomputation.
type StatsService interface {
	// Resync overwrites the user's totals from a fresh snapshot. It is
	// idempotent, and a missing user is logged and swallowed so a caller
	// iterating many users never cascade-fails.
	Resync(ctx context.Context, userID int64) error
	// ResyncAll resyncs every known user and returns how many were
	// refreshed. Per-user failures are logged, never propagated.
	ResyncAll(ctx context.Context) (int, error)
}
