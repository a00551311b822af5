package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// UpsertWater sets the liters drunk for (user, date): insert if absent,
// overwrite if present. Last write wins, no merge.
func UpsertWater(sqldb *sql.DB, deviceID, date string, liters float64) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, ErrInvalid)
	}
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return err
	}
	_, err = sqldb.Exec(`
INSERT INTO water_logs(user_id, date, liters, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id, date) DO UPDATE SET liters=excluded.liters, updated_at=excluded.updated_at
`, userID, date, model.ClampWater(liters))
	if err != nil {
		return fmt.Errorf("upsert water for %s: %w", date, err)
	}
	return nil
}

// WaterForDate returns the liters recorded for the date, 0 if absent.
func WaterForDate(sqldb *sql.DB, deviceID, date string) (float64, error) {
	userID, err := userIDByDevice(sqldb, deviceID)
	if err != nil {
		return 0, err
	}
	var liters float64
	err = sqldb.QueryRow(`SELECT liters FROM water_logs WHERE user_id = ? AND date = ?`, userID, date).Scan(&liters)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read water for %s: %w", date, err)
	}
	return liters, nil
}
