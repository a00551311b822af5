package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/nutrition"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage logged workouts",
}

var (
	workoutType     string
	workoutDuration int
	workoutDistance float64
	workoutDate     string
	workoutTime     string
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout; burned energy comes from the reference burn rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(workoutDate, workoutTime)
		if err != nil {
			return err
		}
		kcal, err := nutrition.ResolveWorkoutEnergy(workoutType, workoutDuration)
		if err != nil {
			return err
		}
		entry := model.WorkoutEntry{
			WorkoutType: workoutType,
			Time:        at,
			DurationMin: workoutDuration,
			KcalBurned:  kcal,
		}
		if cmd.Flags().Changed("distance") {
			if workoutDistance <= 0 {
				return fmt.Errorf("--distance must be > 0 km")
			}
			entry.Distance = &workoutDistance
		}
		return withLedger(func(l *ledger.Ledger) error {
			saved, err := l.AddWorkout(entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %s (%s, %d min): %d kcal burned\n",
				saved.ID, saved.WorkoutType, saved.DurationMin, saved.KcalBurned)
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List retained workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			items, err := l.Workouts()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tTYPE\tMIN\tKCAL\tKM")
			for _, w := range items {
				distance := "-"
				if w.Distance != nil {
					distance = fmt.Sprintf("%.1f", *w.Distance)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%d\t%s\n",
					w.ID, w.Time.Local().Format("2006-01-02 15:04"), w.WorkoutType, w.DurationMin, w.KcalBurned, distance)
			}
			return nil
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			if err := l.DeleteWorkout(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutDeleteCmd)

	workoutAddCmd.Flags().StringVar(&workoutType, "type", "", "Reference workout type, e.g. corsa, pesi, nuoto")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "Duration in minutes")
	workoutAddCmd.Flags().Float64Var(&workoutDistance, "distance", 0, "Optional distance in km")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "Date in YYYY-MM-DD")
	workoutAddCmd.Flags().StringVar(&workoutTime, "time", "", "Time in HH:MM")
	_ = workoutAddCmd.MarkFlagRequired("type")
	_ = workoutAddCmd.MarkFlagRequired("duration")
}
