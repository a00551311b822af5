package fittrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "fittrack tracks meals, workouts, and water with dynamic calorie targets",
	Long:  "fittrack is a local-first nutrition and fitness CLI: it logs meals, workouts, and water, derives a dynamic daily calorie and macro target from your profile and today's training, and syncs with a remote store.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local ledger database")
}
