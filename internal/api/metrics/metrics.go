// Package metrics defines and registers all custom Prometheus metrics for
// the wallet gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wallet"

// ── Identity metrics ──────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "conflict", "invalid", or "provider_error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Provider metrics ──────────────────────────────────────────────────────────

// ProviderRequestsTotal counts outbound calls to the payment provider.
// Labels:
//   - endpoint: "create_user", "enable_gas", "get_balance", "mint"
//   - outcome: "ok", "error", "network_error", "read_error"
var ProviderRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Total number of outbound provider requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// ProviderRequestDuration measures the round-trip time of provider calls.
// Label:
//   - endpoint: same values as ProviderRequestsTotal
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of outbound provider requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// BalanceCacheTotal counts balance cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var BalanceCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_cache_total",
		Help:      "Total number of balance cache lookups, labelled by result.",
	},
	[]string{"result"},
)
