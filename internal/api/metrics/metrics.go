// Package metrics defines and registers all custom Prometheus metrics for
// the iReserve API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ireserve"

// LoginsTotal counts login attempts.
// Labels:
//   - actor: "admin" or "user"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by actor kind and result.",
	},
	[]string{"actor", "result"},
)

// RegistrationsTotal counts account registrations.
// Labels:
//   - actor: "admin" or "user"
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by actor kind and result.",
	},
	[]string{"actor", "result"},
)

// TokensIssuedTotal counts signed tokens handed to clients.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by token kind.",
	},
	[]string{"kind"},
)

// RefreshTotal counts refresh attempts.
// Labels:
//   - actor: "admin" or "user"
//   - result: "success" or "rejected"
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_total",
		Help:      "Total number of access-token refresh attempts, by actor kind and result.",
	},
	[]string{"actor", "result"},
)
