package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Maximum entries to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded entries, newest first",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Journal.List(cmd.Context(), userID, listLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries yet. Run 'moodtrail record <emotion> <intensity>' to get started.")
		return nil
	}

	loc := d.Engine.Calendar().Location()
	w := newTable(out)
	fmt.Fprintln(w, "ID\tEMOTION\tINTENSITY\tTAGS\tRECORDED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			e.ID,
			e.Emotion,
			e.Intensity,
			strings.Join(e.Tags, ","),
			formatMillis(e.Timestamp, loc),
		)
	}
	return w.Flush()
}
