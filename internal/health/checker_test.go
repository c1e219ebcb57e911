package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/moodtrail/moodtrail/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("database is locked") }

func statusOf(t *testing.T, c *Checker, name string) Status {
	t.Helper()
	for _, s := range c.Statuses() {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("check %q not found in statuses", name)
	return Status{}
}

// ─── Checker Tests ──────────────────────────────────────────────────────────

func TestNewChecker(t *testing.T) {
	db := newTestDB(t)

	c := NewChecker(db, t.TempDir(), 18, nil)
	if c == nil {
		t.Fatal("NewChecker() returned nil")
	}
	if len(c.checks) != 3 {
		t.Errorf("checks = %d, want 3", len(c.checks))
	}
	if c.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", c.interval, DefaultInterval)
	}
}

func TestChecker_RunAllHealthy(t *testing.T) {
	db := newTestDB(t)

	c := NewChecker(db, t.TempDir(), 18, nil)
	c.RunOnce(context.Background())

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("Statuses() = %d, want 3", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %q should be healthy, got error: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true when all checks pass")
	}
}

func TestChecker_IsHealthy_BeforeRun(t *testing.T) {
	c := NewChecker(newTestDB(t), t.TempDir(), 18, nil)

	// No statuses yet, so healthy vacuously.
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true before first run (no statuses)")
	}
}

func TestChecker_SQLiteFailure(t *testing.T) {
	c := NewChecker(failingPinger{}, t.TempDir(), 18, nil)
	c.RunOnce(context.Background())

	s := statusOf(t, c, "sqlite")
	if s.Healthy {
		t.Error("sqlite check should fail")
	}
	if s.Error != "database is locked" {
		t.Errorf("error = %q", s.Error)
	}
	if c.IsHealthy() {
		t.Error("IsHealthy() should be false")
	}
}

func TestChecker_DataDirRecovers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	c := NewChecker(newTestDB(t), dir, 18, nil)
	c.RunOnce(context.Background())
	if statusOf(t, c, "data_dir").Healthy {
		t.Fatal("data_dir should fail before recovery")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("recovery should create the directory: %v", err)
	}

	c.RunOnce(context.Background())
	if !statusOf(t, c, "data_dir").Healthy {
		t.Error("data_dir should be healthy after recovery")
	}
}

func TestChecker_DataDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewChecker(newTestDB(t), path, 18, nil)
	c.RunOnce(context.Background())
	if statusOf(t, c, "data_dir").Healthy {
		t.Error("data_dir should fail when path is a file")
	}
}

func TestChecker_EmptyCatalog(t *testing.T) {
	c := NewChecker(newTestDB(t), t.TempDir(), 0, nil)
	c.RunOnce(context.Background())
	if statusOf(t, c, "catalog").Healthy {
		t.Error("catalog check should fail for an empty catalog")
	}
}

func TestChecker_CustomCheck(t *testing.T) {
	c := &Checker{log: zap.NewNop()}
	c.Add(Check{
		Name:    "always_pass",
		CheckFn: func(ctx context.Context) error { return nil },
	})
	c.Add(Check{
		Name:      "always_fail",
		CheckFn:   func(ctx context.Context) error { return os.ErrPermission },
		RecoverFn: func(ctx context.Context) error { return errors.New("still broken") },
	})

	c.RunOnce(context.Background())

	if !statusOf(t, c, "always_pass").Healthy {
		t.Error("always_pass check should be healthy")
	}
	s := statusOf(t, c, "always_fail")
	if s.Healthy {
		t.Error("always_fail check should not be healthy")
	}
	if s.Error == "" {
		t.Error("error message should be populated")
	}
}

func TestChecker_StatusesCopy(t *testing.T) {
	c := NewChecker(newTestDB(t), t.TempDir(), 18, nil)
	c.RunOnce(context.Background())

	s1 := c.Statuses()
	s2 := c.Statuses()
	s1[0].Healthy = false
	if !s2[0].Healthy {
		t.Error("Statuses() should return a copy, not a reference")
	}
}

func TestChecker_RunStopsOnCancel(t *testing.T) {
	c := NewChecker(newTestDB(t), t.TempDir(), 18, nil)
	c.SetInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if len(c.Statuses()) != 3 {
		t.Error("expected statuses after Run")
	}
}
