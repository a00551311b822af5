package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/target"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show today's dynamic calorie and macro target",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			profile, todayKcal, err := l.DailyTargetInput()
			if err != nil {
				return err
			}
			printTarget(cmd, target.ComputeDailyTarget(profile, todayKcal))
			return nil
		})
	},
}

func printTarget(cmd *cobra.Command, t model.DailyTarget) {
	fmt.Fprintf(cmd.OutOrStdout(), "BMR: %d kcal\n", t.BMR)
	fmt.Fprintf(cmd.OutOrStdout(), "Base TDEE: %d kcal\n", t.BaseTDEE)
	fmt.Fprintf(cmd.OutOrStdout(), "Workout bonus: %d kcal\n", t.ExtraWorkoutBonus)
	fmt.Fprintf(cmd.OutOrStdout(), "Dynamic TDEE: %d kcal\n", t.DynamicTDEE)
	fmt.Fprintf(cmd.OutOrStdout(), "Target: %d kcal\n", t.TargetKcal)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg | C %dg | F %dg\n", t.ProteinG, t.CarbsG, t.FatG)
}

func init() {
	rootCmd.AddCommand(targetCmd)
}
