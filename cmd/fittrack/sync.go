package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/syncer"
)

var syncURL string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local ledger with the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadEnv()
		url := syncURL
		if url == "" {
			url = envOr("FITTRACK_SYNC_URL", "")
		}
		if url == "" {
			return fmt.Errorf("sync server not configured (set --url or FITTRACK_SYNC_URL)")
		}
		return withLedger(func(l *ledger.Ledger) error {
			deviceID, err := l.DeviceID()
			if err != nil {
				return err
			}
			client := &syncer.Client{BaseURL: url, DeviceID: deviceID}
			report, err := syncer.Sync(cmd.Context(), l, client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d mutations (%d ids adopted), pulled fresh snapshot\n", report.Pushed, report.Adopted)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncURL, "url", "", "Sync server base URL (default FITTRACK_SYNC_URL)")
}
