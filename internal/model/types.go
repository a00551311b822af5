package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

type Goal string

const (
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
	GoalBulk     Goal = "bulk"
	GoalRecomp   Goal = "recomp"
)

// UserProfile is the single per-device profile. Gender only selects the BMR
// formula branch; it is not a general identity attribute.
type UserProfile struct {
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
}

// DefaultProfile is the profile a freshly bootstrapped device starts with.
func DefaultProfile() UserProfile {
	return UserProfile{
		WeightKg:      70,
		HeightCm:      170,
		Age:           25,
		Gender:        GenderMale,
		ActivityLevel: ActivityModerate,
		Goal:          GoalMaintain,
	}
}

// DailyTarget is derived output, recomputed on every read and never stored.
type DailyTarget struct {
	BMR               int `json:"bmr"`
	BaseTDEE          int `json:"base_tdee"`
	ExtraWorkoutBonus int `json:"extra_workout_bonus"`
	DynamicTDEE       int `json:"dynamic_tdee"`
	TargetKcal        int `json:"target_kcal"`
	ProteinG          int `json:"protein_g"`
	FatG              int `json:"fat_g"`
	// CarbsG may go negative for very low targets relative to the protein and
	// fat floors; it is reported as computed, not clamped.
	CarbsG int `json:"carbs_g"`
}

// FoodEntry is one portion-scaled food inside a meal. Immutable once created.
type FoodEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kcal     int    `json:"kcal"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
	PortionG int    `json:"portion_g"`
}

type Meal struct {
	ID            string      `json:"id"`
	MealType      string      `json:"meal_type"`
	Time          time.Time   `json:"time"`
	Foods         []FoodEntry `json:"foods"`
	TotalKcal     int         `json:"total_kcal"`
	TotalProteinG int         `json:"total_protein_g"`
	TotalCarbsG   int         `json:"total_carbs_g"`
	TotalFatG     int         `json:"total_fat_g"`
}

// Totals recomputes the meal totals from its food list.
func (m *Meal) Totals() {
	m.TotalKcal, m.TotalProteinG, m.TotalCarbsG, m.TotalFatG = 0, 0, 0, 0
	for _, f := range m.Foods {
		m.TotalKcal += f.Kcal
		m.TotalProteinG += f.ProteinG
		m.TotalCarbsG += f.CarbsG
		m.TotalFatG += f.FatG
	}
}

type WorkoutEntry struct {
	ID          string    `json:"id"`
	WorkoutType string    `json:"workout_type"`
	Time        time.Time `json:"time"`
	DurationMin int       `json:"duration_min"`
	Distance    *float64  `json:"distance,omitempty"`
	KcalBurned  int       `json:"kcal_burned"`
}

// WaterLog holds liters drunk on one local calendar date, clamped to [0, 5].
type WaterLog struct {
	Date   string  `json:"date"`
	Liters float64 `json:"liters"`
}

const MaxWaterLiters = 5.0

// ClampWater bounds a liters value to the accepted [0, MaxWaterLiters] range.
func ClampWater(liters float64) float64 {
	if liters < 0 {
		return 0
	}
	if liters > MaxWaterLiters {
		return MaxWaterLiters
	}
	return liters
}

// DateKey is the local calendar date used to key daily water values. It must
// be recomputed at every access so a session crossing midnight starts a fresh
// accumulator.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
