// Package metrics defines and registers all custom Prometheus metrics for
// the trazos API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trazos"

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivitiesCreatedTotal counts newly created activities.
// Label:
//   - type: the activity type (narrativa, microcuento, drabble, hilo, rol, otro)
var ActivitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_created_total",
		Help:      "Total number of activities created, by type.",
	},
	[]string{"type"},
)

// TracesAwardedTotal accumulates trace points awarded through activity
// creation and updates (not bonuses).
var TracesAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "traces_awarded_total",
		Help:      "Total trace points awarded to activities.",
	},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// ResyncsTotal counts successful user stats resyncs.
// Label:
//   - trigger: what caused the resync ("lifecycle", "manual", "bulk", "retry_queue")
var ResyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_resyncs_total",
		Help:      "Total number of successful user statistics resyncs, by trigger.",
	},
	[]string{"trigger"},
)

// ResyncFailuresTotal counts resyncs that failed after retry. Non-zero values
// mean displayed totals may be stale until the next successful resync.
var ResyncFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_resync_failures_total",
		Help:      "Total number of user statistics resyncs that failed.",
	},
)

// ── Bonus metrics ─────────────────────────────────────────────────────────────

// BonusGrantedTotal counts bonus awards granted.
// Label:
//   - category: the bonus category (birthday, project-entry, promo, ...)
var BonusGrantedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bonus_granted_total",
		Help:      "Total number of bonus awards granted, by category.",
	},
	[]string{"category"},
)

// ── Ranking metrics ───────────────────────────────────────────────────────────

// RankingCacheTotal counts ranking cache lookups.
// Label:
//   - result: "hit" or "miss"
var RankingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ranking_cache_total",
		Help:      "Total number of ranking cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
