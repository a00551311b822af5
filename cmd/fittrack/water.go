package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track today's water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <liters>",
	Short: "Add liters to today's total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := parseLitersArg(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			log, err := l.AddWaterToday(liters)
			if err != nil {
				return err
			}
			printWater(cmd, log)
			return nil
		})
	},
}

var waterSetCmd = &cobra.Command{
	Use:   "set <liters>",
	Short: "Overwrite today's total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := parseLitersArg(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			log, err := l.SetWaterToday(liters)
			if err != nil {
				return err
			}
			printWater(cmd, log)
			return nil
		})
	},
}

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's total",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			log, err := l.WaterToday()
			if err != nil {
				return err
			}
			printWater(cmd, log)
			return nil
		})
	},
}

func printWater(cmd *cobra.Command, log model.WaterLog) {
	fmt.Fprintf(cmd.OutOrStdout(), "Water %s: %.2f / %.0f L\n", log.Date, log.Liters, model.MaxWaterLiters)
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterSetCmd, waterShowCmd)
}
