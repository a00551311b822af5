package nutrition

import (
	"errors"
	"fmt"
	"math"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/reference"
)

// ErrNotFound reports an unknown reference-table key. Callers must not
// construct an entry from a failed lookup.
var ErrNotFound = errors.New("not found in reference tables")

// ResolveFoodPortion builds a FoodEntry from a reference food and a portion
// multiplier. Nutrients scale by the multiplier and the portion size by
// (reference grams x multiplier); each field is rounded independently, so
// small cross-field inconsistencies versus recomputing from raw grams are
// expected and acceptable. The entry id is assigned by the ledger on save.
func ResolveFoodPortion(name string, multiplier float64) (model.FoodEntry, error) {
	if multiplier <= 0 {
		return model.FoodEntry{}, fmt.Errorf("portion multiplier must be > 0, got %g", multiplier)
	}
	f, ok := reference.FoodByName(name)
	if !ok {
		return model.FoodEntry{}, fmt.Errorf("food %q: %w", name, ErrNotFound)
	}
	return model.FoodEntry{
		Name:     f.Name,
		Kcal:     int(math.Round(f.Kcal * multiplier)),
		ProteinG: int(math.Round(f.ProteinG * multiplier)),
		CarbsG:   int(math.Round(f.CarbsG * multiplier)),
		FatG:     int(math.Round(f.FatG * multiplier)),
		PortionG: int(math.Round(f.PortionG * multiplier)),
	}, nil
}

// ResolveWorkoutEnergy computes the energy burned by a workout of the given
// duration from the reference burn rate.
func ResolveWorkoutEnergy(workoutType string, durationMin int) (int, error) {
	if durationMin <= 0 {
		return 0, fmt.Errorf("duration must be > 0 minutes, got %d", durationMin)
	}
	w, ok := reference.WorkoutByName(workoutType)
	if !ok {
		return 0, fmt.Errorf("workout %q: %w", workoutType, ErrNotFound)
	}
	return int(math.Round(w.KcalPerMin * float64(durationMin))), nil
}

// WorkoutEnergyOrZero is the fail-soft variant: unknown workout types and
// non-positive durations yield 0 instead of an error.
func WorkoutEnergyOrZero(workoutType string, durationMin int) int {
	kcal, err := ResolveWorkoutEnergy(workoutType, durationMin)
	if err != nil {
		return 0
	}
	return kcal
}
