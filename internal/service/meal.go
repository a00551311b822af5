package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// AddMeal stores a meal with its food list for the device's user and returns
// the server-assigned meal id. The remote store, not the caller, is the id
// authority for remotely-created records.
func AddMeal(sqldb *sql.DB, deviceID string, meal model.Meal) (string, error) {
	if len(meal.Foods) == 0 {
		return "", fmt.Errorf("meal must contain at least one food: %w", ErrInvalid)
	}
	if strings.TrimSpace(meal.MealType) == "" {
		return "", fmt.Errorf("meal type is required: %w", ErrInvalid)
	}
	if meal.Time.IsZero() {
		return "", fmt.Errorf("meal time is required: %w", ErrInvalid)
	}
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return "", err
	}

	meal.Totals()
	mealID := uuid.NewString()

	tx, err := sqldb.Begin()
	if err != nil {
		return "", fmt.Errorf("begin add meal tx: %w", err)
	}
	_, err = tx.Exec(`
INSERT INTO meals(id, user_id, meal_type, time, total_kcal, total_protein_g, total_carbs_g, total_fat_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, mealID, userID, meal.MealType, meal.Time.UTC().Format(time.RFC3339), meal.TotalKcal, meal.TotalProteinG, meal.TotalCarbsG, meal.TotalFatG)
	if err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert meal: %w", err)
	}
	for i, f := range meal.Foods {
		_, err = tx.Exec(`
INSERT INTO meal_foods(id, meal_id, position, name, kcal, protein_g, carbs_g, fat_g, portion_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), mealID, i, f.Name, f.Kcal, f.ProteinG, f.CarbsG, f.FatG, f.PortionG)
		if err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert meal food %q: %w", f.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit add meal: %w", err)
	}
	return mealID, nil
}

// DeleteMeal removes a meal scoped by both id and owning user. Deleting an
// id that does not exist, or that belongs to another user, is a silent
// no-op, not an error.
func DeleteMeal(sqldb *sql.DB, deviceID, mealID string) error {
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return err
	}
	if _, err := sqldb.Exec(`DELETE FROM meals WHERE id = ? AND user_id = ?`, mealID, userID); err != nil {
		return fmt.Errorf("delete meal %s: %w", mealID, err)
	}
	return nil
}

// MealsSince returns the device's meals newer than the cutoff, ordered by
// time descending, with each meal's food list in insertion order.
func MealsSince(sqldb *sql.DB, deviceID string, cutoff time.Time) ([]model.Meal, error) {
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return nil, err
	}
	rows, err := sqldb.Query(`
SELECT id, meal_type, time, total_kcal, total_protein_g, total_carbs_g, total_fat_g
FROM meals
WHERE user_id = ? AND time > ?
ORDER BY time DESC
`, userID, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var timeRaw string
		if err := rows.Scan(&m.ID, &m.MealType, &timeRaw, &m.TotalKcal, &m.TotalProteinG, &m.TotalCarbsG, &m.TotalFatG); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.Time, err = time.Parse(time.RFC3339, timeRaw)
		if err != nil {
			return nil, fmt.Errorf("parse meal time: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}

	for i := range meals {
		foods, err := foodsForMeal(sqldb, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Foods = foods
	}
	return meals, nil
}

func foodsForMeal(sqldb *sql.DB, mealID string) ([]model.FoodEntry, error) {
	rows, err := sqldb.Query(`
SELECT id, name, kcal, protein_g, carbs_g, fat_g, portion_g
FROM meal_foods
WHERE meal_id = ?
ORDER BY position ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list foods for meal %s: %w", mealID, err)
	}
	defer rows.Close()

	foods := make([]model.FoodEntry, 0)
	for rows.Next() {
		var f model.FoodEntry
		if err := rows.Scan(&f.ID, &f.Name, &f.Kcal, &f.ProteinG, &f.CarbsG, &f.FatG, &f.PortionG); err != nil {
			return nil, fmt.Errorf("scan meal food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal foods: %w", err)
	}
	return foods, nil
}
