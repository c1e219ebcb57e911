package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/moodtrail/moodtrail/internal/daemon"
	"github.com/moodtrail/moodtrail/internal/domain"
)

// openDaemon loads config and wires the services. Local commands log
// warnings only unless --verbose is set.
func openDaemon() (*daemon.Daemon, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !verbose {
		cfg.Logging.Level = "warn"
	}
	cfg.Logging.Mode = "development"
	return daemon.NewWithConfig(cfg)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatMillis(ms int64, loc *time.Location) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).In(loc).Format("2006-01-02 15:04")
}

// printUnlocks reports newly unlocked achievements and a level change.
func printUnlocks(w io.Writer, newly []domain.UnlockedAchievement, leveledUp bool, level domain.LevelInfo) {
	for _, u := range newly {
		fmt.Fprintf(w, "Achievement unlocked: %s %s (+%d exp)\n", u.Icon, u.Name, u.Reward.Experience)
	}
	if leveledUp {
		fmt.Fprintf(w, "Level up! You are now level %d %s %s\n", level.Level, level.Badge, level.Name)
	}
}
