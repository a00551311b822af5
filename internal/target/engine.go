package target

import (
	"math"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/reference"
)

// ComputeBMR estimates resting energy expenditure via Mifflin-St Jeor.
// Inputs are assumed validated upstream; the function cannot fail.
func ComputeBMR(p model.UserProfile) int {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderFemale {
		bmr -= 161
	} else {
		bmr += 5
	}
	return int(math.Round(bmr))
}

// ComputeBaseTDEE scales BMR by the profile's activity multiplier. An unknown
// activity level falls back to sedentary rather than failing.
func ComputeBaseTDEE(p model.UserProfile) int {
	mult, ok := reference.ActivityMultiplier(p.ActivityLevel)
	if !ok {
		mult, _ = reference.ActivityMultiplier(model.ActivitySedentary)
	}
	return int(math.Round(float64(ComputeBMR(p)) * mult))
}

// ComputeDailyTarget derives the full daily target from the profile and the
// sum of today's logged workout energy. Only half of exercise energy is
// credited back, to avoid over-crediting intensity estimates. Pure and
// deterministic: identical inputs always yield identical output.
func ComputeDailyTarget(p model.UserProfile, todayWorkoutKcal int) model.DailyTarget {
	preset, ok := reference.PresetForGoal(p.Goal)
	if !ok {
		preset, _ = reference.PresetForGoal(model.GoalMaintain)
	}

	bmr := ComputeBMR(p)
	baseTDEE := ComputeBaseTDEE(p)
	bonus := int(math.Round(float64(todayWorkoutKcal) * 0.5))
	dynamicTDEE := baseTDEE + bonus
	targetKcal := dynamicTDEE + preset.DeficitKcal

	proteinG := int(math.Round(p.WeightKg * preset.ProteinPerKg))
	fatG := int(math.Round(p.WeightKg))
	carbsG := int(math.Round(float64(targetKcal-proteinG*4-fatG*9) / 4))

	return model.DailyTarget{
		BMR:               bmr,
		BaseTDEE:          baseTDEE,
		ExtraWorkoutBonus: bonus,
		DynamicTDEE:       dynamicTDEE,
		TargetKcal:        targetKcal,
		ProteinG:          proteinG,
		FatG:              fatG,
		CarbsG:            carbsG,
	}
}
