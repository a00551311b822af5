package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/target"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake, training, water, and target progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			summary, err := todaySummary(l)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", summary.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Intake: %d kcal | P %dg | C %dg | F %dg\n",
				summary.Kcal, summary.ProteinG, summary.CarbsG, summary.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Training: %d kcal burned\n", summary.WorkoutKcal)
			fmt.Fprintf(cmd.OutOrStdout(), "Target: %d kcal | P %dg | C %dg | F %dg\n",
				summary.Target.TargetKcal, summary.Target.ProteinG, summary.Target.CarbsG, summary.Target.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal\n", summary.Target.TargetKcal-summary.Kcal)
			fmt.Fprintf(cmd.OutOrStdout(), "Water: %.2f / %.0f L\n", summary.WaterLiters, model.MaxWaterLiters)
			return nil
		})
	},
}

type daySummary struct {
	Date        string
	Kcal        int
	ProteinG    int
	CarbsG      int
	FatG        int
	WorkoutKcal int
	WaterLiters float64
	Target      model.DailyTarget
}

func todaySummary(l *ledger.Ledger) (daySummary, error) {
	profile, workoutKcal, err := l.DailyTargetInput()
	if err != nil {
		return daySummary{}, err
	}
	meals, err := l.Meals()
	if err != nil {
		return daySummary{}, err
	}
	water, err := l.WaterToday()
	if err != nil {
		return daySummary{}, err
	}

	summary := daySummary{
		Date:        water.Date,
		WorkoutKcal: workoutKcal,
		WaterLiters: water.Liters,
		Target:      target.ComputeDailyTarget(profile, workoutKcal),
	}
	for _, m := range meals {
		if model.DateKey(m.Time) != summary.Date {
			continue
		}
		summary.Kcal += m.TotalKcal
		summary.ProteinG += m.TotalProteinG
		summary.CarbsG += m.TotalCarbsG
		summary.FatG += m.TotalFatG
	}
	return summary, nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
