package fittrack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/nutrition"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage logged meals",
}

var (
	mealType  string
	mealFoods []string
	mealDate  string
	mealTime  string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal from reference foods",
	Long:  "Log a meal from reference foods. Each --food takes name[:multiplier], e.g. --food banana --food pasta:1.5.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(mealFoods) == 0 {
			return fmt.Errorf("at least one --food is required")
		}
		at, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		foods := make([]model.FoodEntry, 0, len(mealFoods))
		for _, spec := range mealFoods {
			name, multiplier, err := parseFoodSpec(spec)
			if err != nil {
				return err
			}
			entry, err := nutrition.ResolveFoodPortion(name, multiplier)
			if err != nil {
				return err
			}
			foods = append(foods, entry)
		}
		return withLedger(func(l *ledger.Ledger) error {
			meal, err := l.AddMeal(model.Meal{MealType: mealType, Time: at, Foods: foods})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %s (%s): %d kcal | P %dg | C %dg | F %dg\n",
				meal.ID, meal.MealType, meal.TotalKcal, meal.TotalProteinG, meal.TotalCarbsG, meal.TotalFatG)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List retained meals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			meals, err := l.Meals()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tTYPE\tKCAL\tP\tC\tF")
			for _, m := range meals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
					m.ID, m.Time.Local().Format("2006-01-02 15:04"), m.MealType, m.TotalKcal, m.TotalProteinG, m.TotalCarbsG, m.TotalFatG)
				for _, f := range m.Foods {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s %dg: %d kcal\n", f.Name, f.PortionG, f.Kcal)
				}
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			if err := l.DeleteMeal(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func parseFoodSpec(spec string) (string, float64, error) {
	name, rest, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("invalid --food %q (expected name[:multiplier])", spec)
	}
	if !found {
		return name, 1, nil
	}
	multiplier, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid multiplier in --food %q", spec)
	}
	return name, multiplier, nil
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type, e.g. colazione, pranzo, cena, spuntino")
	mealAddCmd.Flags().StringArrayVar(&mealFoods, "food", nil, "Reference food as name[:multiplier]; repeatable")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date in YYYY-MM-DD")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time in HH:MM")
	_ = mealAddCmd.MarkFlagRequired("type")
}
