package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/reference"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "List reference foods (per 100 g, with default portion)",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL\tP\tC\tF\tPORTION")
		for _, name := range reference.FoodNames() {
			f, _ := reference.FoodByName(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.0fg\n",
				f.Name, f.Kcal, f.ProteinG, f.CarbsG, f.FatG, f.PortionG)
		}
	},
}

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "List reference workout types and burn rates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL/MIN")
		for _, name := range reference.WorkoutNames() {
			w, _ := reference.WorkoutByName(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\n", w.Name, w.KcalPerMin)
		}
	},
}

func init() {
	rootCmd.AddCommand(foodsCmd, workoutsCmd)
}
