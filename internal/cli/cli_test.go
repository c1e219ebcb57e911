package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("moodtrail %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[" + strings.Repeat(".", barWidth) + "]   0%"},
		{100, "[" + strings.Repeat("=", barWidth) + "] 100%"},
		{150, "[" + strings.Repeat("=", barWidth) + "] 100%"},
		{50, "[" + strings.Repeat("=", 14) + ">" + strings.Repeat(".", 15) + "]  50%"},
	}
	for _, tt := range tests {
		if got := renderBar(tt.pct); got != tt.want {
			t.Errorf("renderBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestCLI_Workflow(t *testing.T) {
	t.Setenv("MOODTRAIL_HOME", t.TempDir())

	out := run(t, "record", "happy", "7", "--tag", "work", "--note", "good day", "--user", "alice")
	if !strings.Contains(out, "Recorded happy (7/10)") {
		t.Errorf("record output: %s", out)
	}
	if !strings.Contains(out, "Achievement unlocked:") {
		t.Errorf("expected an unlock message: %s", out)
	}
	id := regexp.MustCompile(`as (\S+)`).FindStringSubmatch(out)
	if id == nil {
		t.Fatalf("no entry id in output: %s", out)
	}

	out = run(t, "list", "--user", "alice")
	if !strings.Contains(out, id[1]) || !strings.Contains(out, "work") {
		t.Errorf("list output: %s", out)
	}

	out = run(t, "stats", "--user", "alice")
	if !strings.Contains(out, "Current streak: 1 day(s)") {
		t.Errorf("stats output: %s", out)
	}

	out = run(t, "achievements", "--user", "alice")
	if !strings.Contains(out, "of 18 unlocked") {
		t.Errorf("achievements output: %s", out)
	}

	out = run(t, "summary", "--user", "alice")
	if !strings.Contains(out, "This week: 1 entries") {
		t.Errorf("summary output: %s", out)
	}

	out = run(t, "catalog")
	if !strings.Contains(out, "first_record") || !strings.Contains(out, "Legend") {
		t.Errorf("catalog output: %s", out)
	}

	out = run(t, "delete", id[1], "--user", "alice")
	if !strings.Contains(out, "Deleted "+id[1]) {
		t.Errorf("delete output: %s", out)
	}

	out = run(t, "list", "--user", "alice")
	if !strings.Contains(out, "No entries yet") {
		t.Errorf("expected empty list: %s", out)
	}
}

func TestCLI_RecordRejectsBadIntensity(t *testing.T) {
	t.Setenv("MOODTRAIL_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"record", "happy", "loud"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected an error for a non-numeric intensity")
	}
}
