package reference

import (
	"sort"
	"strings"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// FoodProfile describes a reference food: nutrients per 100 g plus the
// default portion size in grams.
type FoodProfile struct {
	Name     string
	Kcal     float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	PortionG float64
}

// WorkoutProfile describes a reference workout type and its energy burn rate.
type WorkoutProfile struct {
	Name       string
	KcalPerMin float64
}

// GoalPreset couples a daily calorie deficit/surplus with a protein-per-kg
// multiplier. DeficitKcal is negative for a cut, positive for a bulk.
type GoalPreset struct {
	DeficitKcal  int
	ProteinPerKg float64
}

var foods = map[string]FoodProfile{
	"banana":       {Name: "Banana", Kcal: 89, ProteinG: 1.1, CarbsG: 22.8, FatG: 0.3, PortionG: 120},
	"mela":         {Name: "Mela", Kcal: 52, ProteinG: 0.3, CarbsG: 13.8, FatG: 0.2, PortionG: 150},
	"pasta":        {Name: "Pasta", Kcal: 131, ProteinG: 5.0, CarbsG: 25.0, FatG: 1.1, PortionG: 180},
	"riso":         {Name: "Riso", Kcal: 130, ProteinG: 2.7, CarbsG: 28.2, FatG: 0.3, PortionG: 150},
	"pollo":        {Name: "Pollo", Kcal: 165, ProteinG: 31.0, CarbsG: 0, FatG: 3.6, PortionG: 150},
	"uova":         {Name: "Uova", Kcal: 155, ProteinG: 13.0, CarbsG: 1.1, FatG: 11.0, PortionG: 100},
	"tonno":        {Name: "Tonno", Kcal: 116, ProteinG: 25.5, CarbsG: 0, FatG: 0.8, PortionG: 80},
	"pane":         {Name: "Pane", Kcal: 265, ProteinG: 9.0, CarbsG: 49.0, FatG: 3.2, PortionG: 50},
	"latte":        {Name: "Latte", Kcal: 42, ProteinG: 3.4, CarbsG: 5.0, FatG: 1.0, PortionG: 250},
	"yogurt greco": {Name: "Yogurt Greco", Kcal: 59, ProteinG: 10.0, CarbsG: 3.6, FatG: 0.4, PortionG: 170},
	"insalata":     {Name: "Insalata", Kcal: 15, ProteinG: 1.4, CarbsG: 2.9, FatG: 0.2, PortionG: 100},
	"patate":       {Name: "Patate", Kcal: 77, ProteinG: 2.0, CarbsG: 17.5, FatG: 0.1, PortionG: 200},
	"salmone":      {Name: "Salmone", Kcal: 208, ProteinG: 20.4, CarbsG: 0, FatG: 13.4, PortionG: 125},
	"avena":        {Name: "Avena", Kcal: 389, ProteinG: 16.9, CarbsG: 66.3, FatG: 6.9, PortionG: 40},
	"mandorle":     {Name: "Mandorle", Kcal: 579, ProteinG: 21.2, CarbsG: 21.6, FatG: 49.9, PortionG: 30},
}

var workouts = map[string]WorkoutProfile{
	"corsa":     {Name: "Corsa", KcalPerMin: 12},
	"camminata": {Name: "Camminata", KcalPerMin: 4},
	"ciclismo":  {Name: "Ciclismo", KcalPerMin: 8},
	"nuoto":     {Name: "Nuoto", KcalPerMin: 10},
	"pesi":      {Name: "Pesi", KcalPerMin: 6},
	"yoga":      {Name: "Yoga", KcalPerMin: 3},
	"hiit":      {Name: "HIIT", KcalPerMin: 14},
	"calcio":    {Name: "Calcio", KcalPerMin: 9},
	"tennis":    {Name: "Tennis", KcalPerMin: 7},
	"corda":     {Name: "Corda", KcalPerMin: 13},
}

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

var goalPresets = map[model.Goal]GoalPreset{
	model.GoalCut:      {DeficitKcal: -400, ProteinPerKg: 2.2},
	model.GoalMaintain: {DeficitKcal: 0, ProteinPerKg: 1.8},
	model.GoalBulk:     {DeficitKcal: 350, ProteinPerKg: 2.0},
	model.GoalRecomp:   {DeficitKcal: -200, ProteinPerKg: 2.4},
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FoodByName looks up a reference food case-insensitively.
func FoodByName(name string) (FoodProfile, bool) {
	f, ok := foods[normalize(name)]
	return f, ok
}

// WorkoutByName looks up a reference workout type case-insensitively.
func WorkoutByName(name string) (WorkoutProfile, bool) {
	w, ok := workouts[normalize(name)]
	return w, ok
}

// ActivityMultiplier returns the TDEE multiplier for an activity level.
func ActivityMultiplier(level model.ActivityLevel) (float64, bool) {
	m, ok := activityMultipliers[level]
	return m, ok
}

// PresetForGoal returns the deficit/protein preset for a goal.
func PresetForGoal(goal model.Goal) (GoalPreset, bool) {
	p, ok := goalPresets[goal]
	return p, ok
}

// FoodNames returns all reference food names, sorted.
func FoodNames() []string {
	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// WorkoutNames returns all reference workout names, sorted.
func WorkoutNames() []string {
	names := make([]string, 0, len(workouts))
	for _, w := range workouts {
		names = append(names, w.Name)
	}
	sort.Strings(names)
	return names
}

// ValidActivityLevels lists accepted activity levels for input validation.
func ValidActivityLevels() []model.ActivityLevel {
	return []model.ActivityLevel{
		model.ActivitySedentary,
		model.ActivityLight,
		model.ActivityModerate,
		model.ActivityActive,
		model.ActivityVeryActive,
	}
}

// ValidGoals lists accepted goal presets for input validation.
func ValidGoals() []model.Goal {
	return []model.Goal{model.GoalCut, model.GoalMaintain, model.GoalBulk, model.GoalRecomp}
}
