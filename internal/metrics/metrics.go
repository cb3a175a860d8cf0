// Package metrics exposes Prometheus counters for the classification pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts completed classifications per category.
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "environ_classifications_total",
			Help: "Total number of completed waste classifications",
		},
		[]string{"category"},
	)

	// VisionFailuresTotal counts vision calls that exhausted their retry budget.
	VisionFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "environ_vision_failures_total",
			Help: "Total number of vision capability calls that failed after retries",
		},
	)

	// FacilityLookupsTotal counts facility lookups by outcome (hit, empty, error).
	FacilityLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "environ_facility_lookups_total",
			Help: "Total number of nearby facility lookups",
		},
		[]string{"outcome"},
	)

	// BadgesAwardedTotal counts badge awards per badge name.
	BadgesAwardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "environ_badges_awarded_total",
			Help: "Total number of badges awarded",
		},
		[]string{"badge"},
	)
)
