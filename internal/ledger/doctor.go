package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// Check inspects the stored state and returns human-readable problems:
// malformed JSON values, water values outside the clamp, water keys with
// invalid dates, and duplicate meal or workout ids. An empty slice means the
// ledger is healthy.
func (l *Ledger) Check() ([]string, error) {
	problems := make([]string, 0)

	keys, err := l.store.Keys("")
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, ok, err := l.store.RawValue(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !json.Valid([]byte(raw)) {
			problems = append(problems, fmt.Sprintf("key %q holds malformed JSON", key))
			continue
		}
		if strings.HasPrefix(key, waterKeyPrefix) {
			date := strings.TrimPrefix(key, waterKeyPrefix)
			if _, err := time.Parse("2006-01-02", date); err != nil {
				problems = append(problems, fmt.Sprintf("water key %q has an invalid date", key))
			}
			var liters float64
			if err := json.Unmarshal([]byte(raw), &liters); err != nil {
				problems = append(problems, fmt.Sprintf("water key %q is not a number", key))
			} else if liters < 0 || liters > model.MaxWaterLiters {
				problems = append(problems, fmt.Sprintf("water key %q holds %g liters, outside [0, %g]", key, liters, model.MaxWaterLiters))
			}
		}
	}

	meals, err := l.Meals()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, m := range meals {
		if seen[m.ID] {
			problems = append(problems, fmt.Sprintf("duplicate meal id %s", m.ID))
		}
		seen[m.ID] = true
		if len(m.Foods) == 0 {
			problems = append(problems, fmt.Sprintf("meal %s has no foods", m.ID))
		}
	}

	workouts, err := l.Workouts()
	if err != nil {
		return nil, err
	}
	seen = map[string]bool{}
	for _, w := range workouts {
		if seen[w.ID] {
			problems = append(problems, fmt.Sprintf("duplicate workout id %s", w.ID))
		}
		seen[w.ID] = true
	}

	return problems, nil
}
