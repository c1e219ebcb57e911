// Package metrics provides Prometheus metrics for moodtrail: the entry log,
// achievement unlocks, level-ups, engine refreshes, HTTP traffic and health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Entry Log ──────────────────────────────────────────────────────────────

// EntriesRecorded tracks recorded entries by emotion.
var EntriesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "entries_recorded_total",
	Help:      "Total emotion entries recorded.",
}, []string{"emotion"})

// EntriesDeleted tracks deleted entries.
var EntriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "entries_deleted_total",
	Help:      "Total emotion entries deleted.",
})

// EntriesRejected tracks drafts rejected by validation.
var EntriesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "entries_rejected_total",
	Help:      "Total drafts rejected by validation.",
}, []string{"reason"})

// ─── Engagement ─────────────────────────────────────────────────────────────

// AchievementsUnlocked tracks unlocks by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"category"})

// LevelUps tracks level-ups by the level reached.
var LevelUps = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "level_ups_total",
	Help:      "Total level-ups by level reached.",
}, []string{"level"})

// NotificationsSent tracks notifications stored by type.
var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "notifications_sent_total",
	Help:      "Total notifications that passed the delivery policy.",
}, []string{"type"})

// RefreshDuration tracks one load-evaluate-persist cycle.
var RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "moodtrail",
	Name:      "refresh_duration_seconds",
	Help:      "Engine refresh duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests tracks API requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "http_requests_total",
	Help:      "Total HTTP API requests.",
}, []string{"route", "code"})

// HTTPLatency tracks API request duration by route pattern.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "moodtrail",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP API request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "moodtrail",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})

// HealthRecoveries tracks auto-recovery attempts.
var HealthRecoveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodtrail",
	Name:      "health_recoveries_total",
	Help:      "Total auto-recovery attempts per check.",
}, []string{"check"})
