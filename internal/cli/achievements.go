package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moodtrail/moodtrail/internal/domain"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(catalogCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show unlocked and locked achievements",
	RunE:    runAchievements,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active achievement catalog and level table",
	RunE:  runCatalog,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Journal.Summary(cmd.Context(), userID)
	if err != nil {
		return err
	}
	unlockedAt := make(map[string]string, len(sum.Unlocked))
	loc := d.Engine.Calendar().Location()
	for _, u := range sum.Unlocked {
		unlockedAt[u.ID] = u.UnlockedAt.In(loc).Format("2006-01-02")
	}

	out := cmd.OutOrStdout()
	w := newTable(out)
	fmt.Fprintln(w, "\tNAME\tCATEGORY\tRARITY\tEXP\tUNLOCKED")
	for _, a := range d.Engine.Catalog().Achievements() {
		mark, when := " ", "-"
		if at, ok := unlockedAt[a.ID]; ok {
			mark, when = "*", at
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%d\t%s\n", mark, a.Icon, a.Name, a.Category, a.Rarity, a.Reward.Experience, when)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	as := sum.AchievementStats
	fmt.Fprintf(out, "\n%d of %d unlocked  %s\n", as.Unlocked, as.Total, renderBar(as.ProgressPercent))
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	catalog := d.Engine.Catalog()
	out := cmd.OutOrStdout()

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRULE\tEXP")
	for _, a := range catalog.Achievements() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", a.ID, a.Name, a.Category, domain.DescribeCondition(a.Condition), a.Reward.Experience)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	w = newTable(out)
	fmt.Fprintln(w, "LEVEL\tNAME\tMIN EXP\tMAX EXP")
	for _, l := range catalog.Levels() {
		fmt.Fprintf(w, "%d\t%s %s\t%d\t%d\n", l.Level, l.Badge, l.Name, l.MinExp, l.MaxExp)
	}
	return w.Flush()
}
