package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/moodtrail/moodtrail/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and emotion statistics",
	RunE:  runStats,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show stats, recent activity, level and recommendations",
	RunE:  runSummary,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Journal.Evaluate(cmd.Context(), userID)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), result.Stats)
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Journal.Summary(cmd.Context(), userID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lvl := sum.Level
	fmt.Fprintf(out, "Level %d %s %s  (%d exp)\n", lvl.Level, lvl.Badge, lvl.Name, sum.TotalExperience)
	fmt.Fprintf(out, "  %s  %d exp to next\n\n", renderBar(lvl.ProgressPercent), lvl.ExpToNext)

	printStats(out, sum.Stats)

	fmt.Fprintf(out, "\nThis week: %d entries\n", sum.Recent.WeeklyCount)
	loc := d.Engine.Calendar().Location()
	for _, e := range sum.Recent.Entries {
		fmt.Fprintf(out, "  %s  %-9s %2d/10\n", formatMillis(e.Timestamp, loc), e.Emotion, e.Intensity)
	}

	as := sum.AchievementStats
	fmt.Fprintf(out, "\nAchievements: %d/%d  %s\n", as.Unlocked, as.Total, renderBar(as.ProgressPercent))
	if len(sum.Recommended) > 0 {
		fmt.Fprintln(out, "Up next:")
		for _, r := range sum.Recommended {
			fmt.Fprintf(out, "  %s %-18s %s  %s\n", r.Icon, r.Name, renderBar(r.Progress), r.Hint)
		}
	}
	return nil
}

func printStats(out io.Writer, s domain.UserStats) {
	fmt.Fprintf(out, "Entries:        %d over %d day(s)\n", s.TotalRecords, s.ActiveDays)
	fmt.Fprintf(out, "Current streak: %d day(s)\n", s.CurrentStreak)
	fmt.Fprintf(out, "Longest streak: %d day(s)\n", s.LongestStreak)
	fmt.Fprintf(out, "Avg intensity:  %.1f\n", s.AverageIntensity)
	if s.DominantEmotion != "" {
		fmt.Fprintf(out, "Most felt:      %s (%.1f%%)\n", s.DominantEmotion, s.DominantPercentage)
	}
	if len(s.EmotionDistribution) == 0 {
		return
	}

	w := newTable(out)
	fmt.Fprintln(w, "\nEMOTION\tCOUNT")
	for _, name := range domain.Emotions {
		if n := s.EmotionDistribution[name]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\n", name, n)
		}
	}
	// Names outside the vocabulary, from imported data.
	var extra []string
	for name := range s.EmotionDistribution {
		if !domain.IsKnownEmotion(name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		fmt.Fprintf(w, "%s\t%d\n", name, s.EmotionDistribution[name])
	}
	w.Flush()
}
