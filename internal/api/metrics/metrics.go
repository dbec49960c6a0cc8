// Package metrics defines the application Prometheus metrics. Request-level
// HTTP metrics come from the echoprometheus middleware; these cover the
// hiring workflow itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ats"

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts.",
	},
	[]string{"action", "result"},
)

// JobsCreatedTotal counts posted jobs.
var JobsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs posted.",
	},
)

// CandidatesSubmittedTotal counts candidate submissions.
// Label:
//   - stage: the initial stage
var CandidatesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_submitted_total",
		Help:      "Total number of candidates submitted, by initial stage.",
	},
	[]string{"stage"},
)

// StageTransitionsTotal counts stage updates by destination stage.
var StageTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_transitions_total",
		Help:      "Total number of candidate stage updates, by destination stage.",
	},
	[]string{"to"},
)

// ExportRows observes how many candidates each export contains.
var ExportRows = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_rows",
		Help:      "Number of candidate rows per spreadsheet export.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6), // 1, 4, 16, 64, 256, 1024
	},
)

// ResetsTotal counts full data resets.
var ResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resets_total",
		Help:      "Total number of full data resets.",
	},
)
