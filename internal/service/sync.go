package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// RetentionWindow is how far back meals and workouts are kept and served.
const RetentionWindow = 7 * 24 * time.Hour

// Snapshot is the authoritative state returned by Pull.
type Snapshot struct {
	Profile     model.UserProfile    `json:"user"`
	Meals       []model.Meal         `json:"meals"`
	Workouts    []model.WorkoutEntry `json:"workouts"`
	WaterLiters float64              `json:"water"`
}

// Pull returns the device's profile, its meals and workouts inside the
// retention window (time descending), and the water value for waterDate
// (0 if absent). Devices pass their own local calendar date so a device in a
// different timezone does not read the server's day; an empty waterDate
// falls back to the server's date. First contact from an unknown device
// bootstraps a user row with defaults.
func Pull(sqldb *sql.DB, deviceID string, now time.Time, waterDate string) (Snapshot, error) {
	if waterDate == "" {
		waterDate = model.DateKey(now)
	} else if _, err := time.Parse("2006-01-02", waterDate); err != nil {
		return Snapshot{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", waterDate, ErrInvalid)
	}
	profile, err := BootstrapUser(sqldb, deviceID)
	if err != nil {
		return Snapshot{}, err
	}
	cutoff := now.Add(-RetentionWindow)

	meals, err := MealsSince(sqldb, deviceID, cutoff)
	if err != nil {
		return Snapshot{}, err
	}
	workouts, err := WorkoutsSince(sqldb, deviceID, cutoff)
	if err != nil {
		return Snapshot{}, err
	}
	water, err := WaterForDate(sqldb, deviceID, waterDate)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Profile: profile, Meals: meals, Workouts: workouts, WaterLiters: water}, nil
}
