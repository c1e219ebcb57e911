// Package cli implements the moodtrail command-line interface using Cobra.
// Every command except serve works on the local database directly.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	userID  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "moodtrail",
	Short: "moodtrail: a mood journal with streaks, achievements and levels",
	Long: `moodtrail records how you feel, one entry at a time.
Consistent journaling unlocks achievements and earns experience toward levels.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", defaultUser(), "User id to act as")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at info level")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultUser() string {
	if u := os.Getenv("MOODTRAIL_USER"); u != "" {
		return u
	}
	return "me"
}
