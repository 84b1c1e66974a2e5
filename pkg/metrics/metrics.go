// Package metrics holds the Prometheus collectors of the achievement engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "visitor_achievements"

// Evaluation outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeDisabled        = "disabled"
	OutcomeInvalidSnapshot = "invalid_snapshot"
	OutcomeStorageError    = "storage_error"
	OutcomeError           = "error"
)

var (
	// EvaluationsTotal counts engine passes by outcome.
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of achievement evaluation passes",
		},
		[]string{"outcome"},
	)

	// EvaluationDuration observes the duration of engine passes.
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of achievement evaluation passes",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// UnlocksTotal counts new unlocks per rule.
	UnlocksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unlocks_total",
			Help:      "Total number of achievements unlocked",
		},
		[]string{"rule_id"},
	)

	// ThemeChangesTotal counts active theme changes by the rule now driving the theme.
	ThemeChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Total number of active theme changes",
		},
		[]string{"rule_id"},
	)

	// CoalescedRefreshesTotal counts refresh calls whose pass was shared with
	// another concurrent caller, the caller that ran the pass included.
	CoalescedRefreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coalesced_refreshes_total",
			Help:      "Total number of refresh calls that shared an evaluation pass",
		},
	)
)

// Collectors returns every collector in this package, for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		EvaluationsTotal,
		EvaluationDuration,
		UnlocksTotal,
		ThemeChangesTotal,
		CoalescedRefreshesTotal,
	}
}
