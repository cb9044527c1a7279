// Package metrics defines and registers all custom Prometheus metrics for
// the driftbox file gateway. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "driftbox"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "rejected", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests the access gate turned away.
// Label:
//   - reason: "missing_token", "invalid_token", or "malformed_claims"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected at the access gate, by reason.",
	},
	[]string{"reason"},
)

// ── File metrics ──────────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts.
// Label:
//   - result: "ok", "invalid", or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads, by result.",
	},
	[]string{"result"},
)

// UploadBytes observes the size distribution of stored files.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size in bytes of successfully stored files.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1 KiB … ~256 MiB
	},
)

// DownloadsTotal counts fetch attempts.
// Label:
//   - result: "ok", "not_found", or "error"
var DownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of file downloads, by result.",
	},
	[]string{"result"},
)

// CleanupEnqueuedTotal counts orphaned objects scheduled for compensating delete.
var CleanupEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_enqueued_total",
		Help:      "Total number of orphaned storage objects queued for removal.",
	},
)
