// Package metrics defines all custom Prometheus metrics for the admin
// console API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adminapi"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts access guard outcomes on protected routes.
// Label:
//   - decision: "allowed", "unauthenticated" or "forbidden"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// SessionsActive tracks the number of currently live browser sessions.
// Incremented on login, decremented on logout; sessions that expire
// server-side without an explicit logout are not subtracted.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of sessions issued and not yet explicitly logged out.",
	},
)

// ArticleWritesTotal counts article mutations.
// Label:
//   - op: "create", "update", "replace" or "delete"
var ArticleWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_writes_total",
		Help:      "Total number of article write operations, by operation.",
	},
	[]string{"op"},
)
