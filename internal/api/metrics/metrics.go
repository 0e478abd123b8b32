// Package metrics defines and registers all custom Prometheus metrics for the
// MarshalHQ marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marshalhq"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsPostedTotal counts newly posted jobs.
// Label:
//   - urgency: "urgent" or "standard"
var JobsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of jobs posted, by urgency.",
	},
	[]string{"urgency"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts successfully created applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationsRejectedTotal counts apply attempts that failed a precondition.
// Label:
//   - reason: "job_not_live", "no_capacity", "already_applied", "job_not_found"
var ApplicationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_rejected_total",
		Help:      "Total number of apply attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// DecisionsTotal counts manager decisions that committed.
// Label:
//   - status: "accepted" or "declined"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of committed application decisions, by status.",
	},
	[]string{"status"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// DecisionsRecordedTotal counts decision events persisted to the audit trail.
// Label:
//   - status: "accepted" or "declined"
var DecisionsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_recorded_total",
		Help:      "Total number of decision events recorded in the audit trail.",
	},
	[]string{"status"},
)

// DecisionQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DecisionQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "decision_queue_depth",
		Help:      "Current number of decision events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Waitlist metrics ──────────────────────────────────────────────────────────

// WaitlistSignupsTotal counts landing-page waitlist signups.
// Label:
//   - interest: "marshal" or "manager"
var WaitlistSignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "waitlist_signups_total",
		Help:      "Total number of waitlist signups, by declared interest.",
	},
	[]string{"interest"},
)
