package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// Archive is the portable JSON snapshot produced by Export and consumed by
// Import.
type Archive struct {
	ExportedAt time.Time            `json:"exported_at"`
	Profile    model.UserProfile    `json:"profile"`
	Meals      []model.Meal         `json:"meals"`
	Workouts   []model.WorkoutEntry `json:"workouts"`
	Water      map[string]float64   `json:"water"`
}

// Export captures the full ledger state, including every retained water day.
func (l *Ledger) Export() (Archive, error) {
	profile, err := l.Profile()
	if err != nil {
		return Archive{}, err
	}
	meals, err := l.Meals()
	if err != nil {
		return Archive{}, err
	}
	workouts, err := l.Workouts()
	if err != nil {
		return Archive{}, err
	}

	water := map[string]float64{}
	keys, err := l.store.Keys(waterKeyPrefix)
	if err != nil {
		return Archive{}, err
	}
	for _, key := range keys {
		var liters float64
		if _, err := l.store.Get(key, &liters); err != nil {
			return Archive{}, err
		}
		water[strings.TrimPrefix(key, waterKeyPrefix)] = liters
	}

	return Archive{
		ExportedAt: l.now(),
		Profile:    profile,
		Meals:      meals,
		Workouts:   workouts,
		Water:      water,
	}, nil
}

// Import overwrites the ledger with an archive's contents (last write wins)
// and prunes anything outside the retention window.
func (l *Ledger) Import(data []byte) error {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("decode archive: %w", err)
	}
	if err := l.store.Put(keyProfile, a.Profile); err != nil {
		return err
	}
	if a.Meals == nil {
		a.Meals = []model.Meal{}
	}
	if err := l.store.Put(keyMeals, a.Meals); err != nil {
		return err
	}
	if a.Workouts == nil {
		a.Workouts = []model.WorkoutEntry{}
	}
	if err := l.store.Put(keyWorkouts, a.Workouts); err != nil {
		return err
	}
	for date, liters := range a.Water {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid water date %q in archive", date)
		}
		if err := l.store.Put(waterKeyPrefix+date, model.ClampWater(liters)); err != nil {
			return err
		}
	}
	return l.Prune()
}
