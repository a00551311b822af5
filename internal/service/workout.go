package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// AddWorkout stores a workout for the device's user and returns the
// server-assigned id.
func AddWorkout(sqldb *sql.DB, deviceID string, w model.WorkoutEntry) (string, error) {
	if strings.TrimSpace(w.WorkoutType) == "" {
		return "", fmt.Errorf("workout type is required: %w", ErrInvalid)
	}
	if w.DurationMin <= 0 {
		return "", fmt.Errorf("duration must be > 0: %w", ErrInvalid)
	}
	if w.KcalBurned < 0 {
		return "", fmt.Errorf("calories burned must be >= 0: %w", ErrInvalid)
	}
	if w.Distance != nil && *w.Distance <= 0 {
		return "", fmt.Errorf("distance must be > 0 when set: %w", ErrInvalid)
	}
	if w.Time.IsZero() {
		return "", fmt.Errorf("workout time is required: %w", ErrInvalid)
	}
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = sqldb.Exec(`
INSERT INTO workouts(id, user_id, workout_type, time, duration_min, distance, kcal_burned)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, id, userID, w.WorkoutType, w.Time.UTC().Format(time.RFC3339), w.DurationMin, w.Distance, w.KcalBurned)
	if err != nil {
		return "", fmt.Errorf("insert workout: %w", err)
	}
	return id, nil
}

// DeleteWorkout removes a workout scoped by id and owning user; unknown or
// foreign ids are a silent no-op.
func DeleteWorkout(sqldb *sql.DB, deviceID, workoutID string) error {
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return err
	}
	if _, err := sqldb.Exec(`DELETE FROM workouts WHERE id = ? AND user_id = ?`, workoutID, userID); err != nil {
		return fmt.Errorf("delete workout %s: %w", workoutID, err)
	}
	return nil
}

// WorkoutsSince returns the device's workouts newer than the cutoff, ordered
// by time descending.
func WorkoutsSince(sqldb *sql.DB, deviceID string, cutoff time.Time) ([]model.WorkoutEntry, error) {
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return nil, err
	}
	rows, err := sqldb.Query(`
SELECT id, workout_type, time, duration_min, distance, kcal_burned
FROM workouts
WHERE user_id = ? AND time > ?
ORDER BY time DESC
`, userID, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	items := make([]model.WorkoutEntry, 0)
	for rows.Next() {
		var w model.WorkoutEntry
		var timeRaw string
		var distance sql.NullFloat64
		if err := rows.Scan(&w.ID, &w.WorkoutType, &timeRaw, &w.DurationMin, &distance, &w.KcalBurned); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.Time, err = time.Parse(time.RFC3339, timeRaw)
		if err != nil {
			return nil, fmt.Errorf("parse workout time: %w", err)
		}
		if distance.Valid {
			v := distance.Float64
			w.Distance = &v
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return items, nil
}
