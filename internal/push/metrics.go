// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Jump reconciliation changes.
const (
	ChangeActivated   = "activated"
	ChangeDeactivated = "deactivated"
)

// PushesTotal counts push requests by mode and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var PushesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tileworld_pushes_total",
		Help: "Total number of push requests by mode and outcome",
	},
	[]string{"mode", "outcome"},
)

// PushRejections counts rejected push requests by reason.
var PushRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tileworld_push_rejections_total",
		Help: "Total number of rejected push requests by reason",
	},
	[]string{"reason"},
)

// PushDuration observes the time from validation to the end of the visual
// transition of successful pushes.
var PushDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "tileworld_push_duration_seconds",
		Help:    "Push duration in seconds, including the visual transition",
		Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.75, 1, 2, 5},
	},
	[]string{"mode"},
)

// RelocatedEvents counts tile events moved by pushes.
var RelocatedEvents = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "tileworld_relocated_events_total",
		Help: "Total number of tile events relocated by pushes",
	},
)

// JumpReconciliations counts jump activation flags changed around pushed
// objects.
var JumpReconciliations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tileworld_jump_activations_total",
		Help: "Jump event activation flags changed by push reconciliation",
	},
	[]string{"change"},
)

// Collectors returns every push metric, for registries that want them
// without RegisterMetrics.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		PushesTotal,
		PushRejections,
		PushDuration,
		RelocatedEvents,
		JumpReconciliations,
	}
}

// RegisterMetrics registers push metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Collectors()...)
}

func recordResult(res Result, elapsed time.Duration) {
	PushesTotal.WithLabelValues(string(res.Mode), string(res.Outcome)).Inc()
	if !res.Pushed() {
		PushRejections.WithLabelValues(string(res.Reason)).Inc()
		return
	}
	PushDuration.WithLabelValues(string(res.Mode)).Observe(elapsed.Seconds())
	RelocatedEvents.Add(float64(len(res.Moves)))
	JumpReconciliations.WithLabelValues(ChangeActivated).Add(float64(res.JumpsActivated))
	JumpReconciliations.WithLabelValues(ChangeDeactivated).Add(float64(res.JumpsDeactivated))
}
