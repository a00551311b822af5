package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EZP98/fitness-tracker/internal/ledger"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/reference"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile driving daily targets",
}

var (
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileGender   string
	profileActivity string
	profileGoal     string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields (unset flags keep current values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			p, err := l.Profile()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("weight") {
				p.WeightKg = profileWeight
			}
			if cmd.Flags().Changed("height") {
				p.HeightCm = profileHeight
			}
			if cmd.Flags().Changed("age") {
				p.Age = profileAge
			}
			if cmd.Flags().Changed("gender") {
				p.Gender = model.Gender(profileGender)
			}
			if cmd.Flags().Changed("activity") {
				p.ActivityLevel = model.ActivityLevel(profileActivity)
			}
			if cmd.Flags().Changed("goal") {
				p.Goal = model.Goal(profileGoal)
			}
			if err := validateProfile(p); err != nil {
				return err
			}
			if err := l.SetProfile(p); err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(l *ledger.Ledger) error {
			p, err := l.Profile()
			if err != nil {
				return err
			}
			printProfile(cmd, p)
			return nil
		})
	},
}

func validateProfile(p model.UserProfile) error {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		return fmt.Errorf("weight, height, and age must be > 0")
	}
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("invalid --gender %q (use male or female)", p.Gender)
	}
	if _, ok := reference.ActivityMultiplier(p.ActivityLevel); !ok {
		return fmt.Errorf("invalid --activity %q (use one of %v)", p.ActivityLevel, reference.ValidActivityLevels())
	}
	if _, ok := reference.PresetForGoal(p.Goal); !ok {
		return fmt.Errorf("invalid --goal %q (use one of %v)", p.Goal, reference.ValidGoals())
	}
	return nil
}

func printProfile(cmd *cobra.Command, p model.UserProfile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", p.WeightKg)
	fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm\n", p.HeightCm)
	fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.Age)
	fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s\n", p.Gender)
	fmt.Fprintf(cmd.OutOrStdout(), "Activity: %s\n", p.ActivityLevel)
	fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", p.Goal)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary, light, moderate, active, very_active")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal: cut, maintain, bulk, recomp")
}
