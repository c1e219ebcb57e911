package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("MOODTRAIL_HOME", "/tmp/moodtrail-home")
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8742 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8742)
	}
	if cfg.Storage.Dir != "/tmp/moodtrail-home" {
		t.Errorf("Storage.Dir = %q, want MOODTRAIL_HOME", cfg.Storage.Dir)
	}
	if cfg.Calendar.Timezone != "Local" {
		t.Errorf("Calendar.Timezone = %q, want Local", cfg.Calendar.Timezone)
	}
	if cfg.Notifications.MaxPerDay != 5 || cfg.Notifications.QuietStart != "23:00" || cfg.Notifications.QuietEnd != "07:00" {
		t.Errorf("Notifications = %+v", cfg.Notifications)
	}
	if cfg.Engagement.MinRecommendProgress != 50 || cfg.Engagement.RecommendLimit != 3 {
		t.Errorf("Engagement = %+v", cfg.Engagement)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MOODTRAIL_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("expected default port, got %d", cfg.API.Port)
	}
}

func TestLoadConfigFile_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	doc := `
[api]
port = 9000

[calendar]
timezone = "Asia/Tokyo"

[notifications]
max_per_day = 2

[logging]
level = "debug"
mode = "development"
`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("unset keys should keep defaults, got host %q", cfg.API.Host)
	}
	if cfg.Calendar.Timezone != "Asia/Tokyo" {
		t.Errorf("Calendar.Timezone = %q", cfg.Calendar.Timezone)
	}
	policy := cfg.Policy()
	if policy.MaxPerDay != 2 || policy.QuietStart != "23:00" {
		t.Errorf("Policy() = %+v", policy)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[api\nport = 1"},
		{"port", "[api]\nport = 70000"},
		{"progress", "[engagement]\nmin_recommend_progress = 150"},
		{"max per day", "[notifications]\nmax_per_day = -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFile)
			if err := os.WriteFile(path, []byte(tt.doc), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfigFile(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("MOODTRAIL_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9100
	cfg.Engagement.RecommendLimit = 5
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if got.API.Port != 9100 || got.Engagement.RecommendLimit != 5 {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		log, err := NewLogger(LoggingConfig{Level: "warn", Mode: mode})
		if err != nil {
			t.Fatalf("NewLogger(%q) error: %v", mode, err)
		}
		if log.Core().Enabled(-1) {
			t.Errorf("mode %q: debug should be disabled at warn level", mode)
		}
	}
	if _, err := NewLogger(LoggingConfig{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

// ─── Daemon Tests ───────────────────────────────────────────────────────────

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Storage.Dir = t.TempDir()
	cfg.API.Port = 0
	cfg.Calendar.Timezone = "UTC"
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewWithConfig(t *testing.T) {
	d, err := NewWithConfig(testConfig(t))
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	defer d.Close()

	if d.Engine.Catalog().Len() != 18 {
		t.Errorf("expected the default catalog, got %d achievements", d.Engine.Catalog().Len())
	}
	if d.Engine.Calendar().Location() != time.UTC {
		t.Errorf("expected UTC calendar, got %v", d.Engine.Calendar().Location())
	}
	if _, err := os.Stat(filepath.Join(d.Config.Storage.Dir, "moodtrail.db")); err != nil {
		t.Errorf("database file should exist: %v", err)
	}
}

func TestNewWithConfig_BadCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Engagement.CatalogFile = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := NewWithConfig(cfg); err == nil {
		t.Error("expected an error for a missing catalog file")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	d, err := NewWithConfig(testConfig(t))
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
