package fittrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/provider/advisor"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Ask the advice gateway how today is going",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadEnv()
		return withLedger(func(l *ledger.Ledger) error {
			summary, err := todaySummary(l)
			if err != nil {
				return err
			}
			profile, err := l.Profile()
			if err != nil {
				return err
			}

			client := &advisor.Client{
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				BaseURL: os.Getenv("OPENAI_BASE_URL"),
				Model:   os.Getenv("OPENAI_MODEL"),
			}
			text, err := advisor.NewAdvisor(client).Request(cmd.Context(), advisor.Snapshot{
				WeightKg:       profile.WeightKg,
				HeightCm:       profile.HeightCm,
				Age:            profile.Age,
				Goal:           string(profile.Goal),
				TodayKcal:      summary.Kcal,
				TargetKcal:     summary.Target.TargetKcal,
				TodayProteinG:  summary.ProteinG,
				TargetProteinG: summary.Target.ProteinG,
				WorkoutDone:    summary.WorkoutKcal > 0,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(adviceCmd)
}
