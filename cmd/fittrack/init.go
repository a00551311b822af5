package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			deviceID, err := l.DeviceID()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger at %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Device ID: %s\n", deviceID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
