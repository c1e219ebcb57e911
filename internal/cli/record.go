package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moodtrail/moodtrail/internal/domain"
)

func init() {
	recordCmd.Flags().StringSliceVarP(&recordTags, "tag", "t", nil, "Tag the entry (repeatable)")
	recordCmd.Flags().StringVarP(&recordNote, "note", "n", "", "Free-text description")
	rootCmd.AddCommand(recordCmd)
}

var (
	recordTags []string
	recordNote string
)

var recordCmd = &cobra.Command{
	Use:   "record EMOTION INTENSITY",
	Short: "Record how you feel (intensity 1-10)",
	Example: `  moodtrail record happy 7 --tag work --note "shipped it"
  moodtrail record tired 4`,
	Args: cobra.ExactArgs(2),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	intensity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("intensity must be a number from %d to %d", domain.MinIntensity, domain.MaxIntensity)
	}

	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, result, err := d.Journal.Record(cmd.Context(), userID, domain.EntryDraft{
		Emotion:     args[0],
		Intensity:   intensity,
		Tags:        recordTags,
		Description: recordNote,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recorded %s (%d/10) as %s\n", entry.Emotion, entry.Intensity, entry.ID)
	fmt.Fprintf(out, "Streak: %d day(s)\n", result.Stats.CurrentStreak)
	printUnlocks(out, result.NewlyUnlocked, result.LeveledUp, result.Level)
	return nil
}
