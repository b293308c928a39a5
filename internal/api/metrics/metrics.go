// Package metrics defines and registers the custom Prometheus metrics for
// the restaurant API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the auth gates.
// Label:
//   - reason: "missing_header", "bad_header", "invalid_token",
//     "unknown_subject", "invalid_role", or "forbidden_role"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// ── Menu metrics ──────────────────────────────────────────────────────────────

// MenuMutationsTotal counts successful admin mutations of the catalog.
// Label:
//   - op: "create", "update", or "delete"
var MenuMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_mutations_total",
		Help:      "Total number of successful menu catalog mutations, by operation.",
	},
	[]string{"op"},
)

// MenuCacheTotal counts menu list cache lookups.
// Label:
//   - result: "hit" or "miss"
var MenuCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_cache_total",
		Help:      "Total number of menu list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
