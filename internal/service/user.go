package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/reference"
)

// BootstrapUser returns the profile for a device identifier, creating the
// user row with default profile values on first contact. Calling it twice
// never creates two users for the same device.
func BootstrapUser(sqldb *sql.DB, deviceID string) (model.UserProfile, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return model.UserProfile{}, fmt.Errorf("device id is required: %w", ErrInvalid)
	}

	profile, err := profileByDevice(sqldb, deviceID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return model.UserProfile{}, err
	}

	p := model.DefaultProfile()
	_, err = sqldb.Exec(`
INSERT INTO users(id, device_id, weight_kg, height_cm, age, gender, activity_level, goal)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), deviceID, p.WeightKg, p.HeightCm, p.Age, string(p.Gender), string(p.ActivityLevel), string(p.Goal))
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("bootstrap user for device %q: %w", deviceID, err)
	}
	return p, nil
}

// UpdateProfile replaces the profile fields for the device's user.
func UpdateProfile(sqldb *sql.DB, deviceID string, p model.UserProfile) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return err
	}
	_, err = sqldb.Exec(`
UPDATE users
SET weight_kg = ?, height_cm = ?, age = ?, gender = ?, activity_level = ?, goal = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, p.WeightKg, p.HeightCm, p.Age, string(p.Gender), string(p.ActivityLevel), string(p.Goal), userID)
	if err != nil {
		return fmt.Errorf("update profile for device %q: %w", deviceID, err)
	}
	return nil
}

func validateProfile(p model.UserProfile) error {
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0: %w", ErrInvalid)
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0: %w", ErrInvalid)
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be > 0: %w", ErrInvalid)
	}
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("gender must be male or female: %w", ErrInvalid)
	}
	if _, ok := reference.ActivityMultiplier(p.ActivityLevel); !ok {
		return fmt.Errorf("unknown activity level %q: %w", p.ActivityLevel, ErrInvalid)
	}
	if _, ok := reference.PresetForGoal(p.Goal); !ok {
		return fmt.Errorf("unknown goal %q: %w", p.Goal, ErrInvalid)
	}
	return nil
}

// userIDByDevice resolves the tenancy boundary: every other query in this
// package is scoped by the user id returned here.
func userIDByDevice(sqldb *sql.DB, deviceID string) (string, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return "", fmt.Errorf("device id is required: %w", ErrInvalid)
	}
	var id string
	err := sqldb.QueryRow(`SELECT id FROM users WHERE device_id = ?`, deviceID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve device %q: %w", deviceID, err)
	}
	return id, nil
}

func profileByDevice(sqldb *sql.DB, deviceID string) (model.UserProfile, error) {
	var p model.UserProfile
	var gender, level, goal string
	err := sqldb.QueryRow(`
SELECT weight_kg, height_cm, age, gender, activity_level, goal
FROM users WHERE device_id = ?
`, deviceID).Scan(&p.WeightKg, &p.HeightCm, &p.Age, &gender, &level, &goal)
	if err == sql.ErrNoRows {
		return model.UserProfile{}, ErrUserNotFound
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("load profile for device %q: %w", deviceID, err)
	}
	p.Gender = model.Gender(gender)
	p.ActivityLevel = model.ActivityLevel(level)
	p.Goal = model.Goal(goal)
	return p, nil
}
