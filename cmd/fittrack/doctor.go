package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run ledger integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			problems, err := l.Check()
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Ledger is healthy")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "problem: %s\n", p)
			}
			return fmt.Errorf("doctor found %d integrity issues", len(problems))
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
