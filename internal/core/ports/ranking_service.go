package ports

import (
	"context"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// Metric selects the value users are ranked by.
type Metric string

const (
	MetricTraces Metric = "traces"
	MetricWords  Metric = "words"
)

// IsValidMetric reports whether m is a supported ranking metric.
func IsValidMetric(m Metric) bool {
	return m == MetricTraces || m == MetricWords
}

// RankedUser is one row of the ordered ranking view.
type RankedUser struct {
	Position        int         `json:"position"`
	UserID          int64       `json:"user_id"`
	Signature       string      `json:"signature"`
	FullName        string      `json:"full_name"`
	Rank            domain.Rank `json:"rank"`
	Medal           string      `json:"medal,omitempty"`
	TotalTraces     int         `json:"total_traces"`
	TotalWords      int         `json:"total_words"`
	TotalActivities int         `json:"total_activities"`
}

// RankingService produces ordered cross-user views.
//
// Contract: users are sorted descending by the chosen metric; ties are broken
// by ascending user id, which keeps the order deterministic across calls.
type RankingService interface {
	Rankings(ctx context.Context, metric Metric) ([]RankedUser, error)
	// Position returns the 1-based position of userID under metric, or
	// domain.ErrUserNotRanked when the user is absent from the view.
	Position(ctx context.Context, userID int64, metric Metric) (int, error)
}
