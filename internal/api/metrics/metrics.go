// Package metrics defines and registers all custom Prometheus metrics for the
// Midas product tracker. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "midas"

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductsAddedTotal counts products accepted for tracking.
// Label:
//   - retailer: the supported retailer the product belongs to (e.g. "Amazon")
var ProductsAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_added_total",
		Help:      "Total number of products added for tracking, by retailer.",
	},
	[]string{"retailer"},
)

// ProductRejectionsTotal counts add requests refused by validation.
// Label:
//   - reason: "invalid_retailer" or "invalid_url"
var ProductRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_rejections_total",
		Help:      "Total number of product submissions rejected by validation.",
	},
	[]string{"reason"},
)

// SubmissionReplaysTotal counts submissions skipped because their idempotency
// key had already been claimed.
var SubmissionReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_replays_total",
		Help:      "Total number of product submissions replayed by idempotency key.",
	},
)

// ProductsStored tracks how many products the in-memory store holds.
var ProductsStored = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "products_stored",
		Help:      "Current number of products held by the in-memory store.",
	},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts successful logins.
// Label:
//   - role: "admin" or "regular"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by resolved role.",
	},
	[]string{"role"},
)

// LoginRejectionsTotal counts logins refused for an empty username or password.
var LoginRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_rejections_total",
		Help:      "Total number of rejected logins.",
	},
)
