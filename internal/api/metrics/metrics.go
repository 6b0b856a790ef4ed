// Package metrics defines and registers all custom Prometheus metrics for
// the wallet console gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet_console"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts session guard evaluations.
// Labels:
//   - policy: the route's access policy ("public", "authenticated", "authenticated-admin")
//   - outcome: "authorized" or the denial reason (e.g. "expired_token")
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of session guard evaluations, by policy and outcome.",
	},
	[]string{"policy", "outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts sessions created on successful login.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions created on login.",
	},
)

// SessionsTerminatedTotal counts sessions cleared, by cause.
// Label:
//   - cause: "logout", "expired", "malformed" or "backend_401"
var SessionsTerminatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_terminated_total",
		Help:      "Total number of sessions cleared, by cause.",
	},
	[]string{"cause"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the wallet backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "wallet_info")
//   - status: HTTP status code, or "error" when the request never completed
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of wallet backend requests, by endpoint and status.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures wallet backend round-trip time.
// Label:
//   - endpoint: logical endpoint name
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of wallet backend requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)
