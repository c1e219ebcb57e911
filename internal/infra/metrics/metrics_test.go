package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

// counterValue sums the samples of a counter family whose labels
// include value.
func counterValue(t *testing.T, family, value string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != family {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetValue() == value {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func TestEntryMetrics(t *testing.T) {
	EntriesRecorded.WithLabelValues("happy").Inc()
	EntriesDeleted.Inc()
	EntriesRejected.WithLabelValues("intensity").Inc()

	names := gatheredNames(t)
	expected := []string{
		"moodtrail_entries_recorded_total",
		"moodtrail_entries_deleted_total",
		"moodtrail_entries_rejected_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestEngagementMetrics(t *testing.T) {
	const family = "moodtrail_achievements_unlocked_total"
	before := counterValue(t, family, "record")
	AchievementsUnlocked.WithLabelValues("record").Add(2)
	if got := counterValue(t, family, "record"); got != before+2 {
		t.Errorf("expected %v, got %v", before+2, got)
	}

	LevelUps.WithLabelValues("2").Inc()
	NotificationsSent.WithLabelValues("achievement").Inc()
	RefreshDuration.Observe(0.004)

	names := gatheredNames(t)
	for _, name := range []string{
		"moodtrail_achievements_unlocked_total",
		"moodtrail_level_ups_total",
		"moodtrail_notifications_sent_total",
		"moodtrail_refresh_duration_seconds",
	} {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestHTTPAndHealthMetrics(t *testing.T) {
	HTTPRequests.WithLabelValues("/api/users/{userID}/stats", "200").Inc()
	HTTPLatency.WithLabelValues("/api/users/{userID}/stats").Observe(0.01)
	HealthCheckStatus.WithLabelValues("sqlite").Set(1)
	HealthRecoveries.WithLabelValues("sqlite").Inc()

	names := gatheredNames(t)
	for _, name := range []string{
		"moodtrail_http_requests_total",
		"moodtrail_http_request_duration_seconds",
		"moodtrail_health_check_status",
		"moodtrail_health_recoveries_total",
	} {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestAllMetricsGatherable(t *testing.T) {
	EntriesRecorded.WithLabelValues("calm")
	EntriesRejected.WithLabelValues("emotion")
	AchievementsUnlocked.WithLabelValues("time")
	LevelUps.WithLabelValues("3")
	NotificationsSent.WithLabelValues("level_up")
	HTTPRequests.WithLabelValues("/health", "200")
	HTTPLatency.WithLabelValues("/health")
	HealthCheckStatus.WithLabelValues("data_dir")
	HealthRecoveries.WithLabelValues("data_dir")

	names := gatheredNames(t)
	count := 0
	for name := range names {
		if strings.HasPrefix(name, "moodtrail_") {
			count++
		}
	}
	if count < 10 {
		t.Errorf("expected at least 10 moodtrail_ metrics, got %d", count)
	}
}
