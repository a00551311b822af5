package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/EZP98/fitness-tracker/internal/model"
)

// Logical keys inside the kv store. Water keys carry the local calendar date
// so crossing midnight naturally starts a fresh accumulator.
const (
	keyProfile  = "profile"
	keyMeals    = "meals"
	keyWorkouts = "workouts"
	keyOutbox   = "outbox"
	keyDeviceID = "device_id"

	waterKeyPrefix = "water_"
)

// RetentionWindow matches the remote store: meals and workouts older than
// this are pruned on open.
const RetentionWindow = 7 * 24 * time.Hour

// Ledger is the device-side store of the profile, recent meals and workouts,
// today's water volume, and the outbox of mutations not yet pushed.
type Ledger struct {
	store *Store
	now   func() time.Time
}

// OutboxEntry is one pending mutation awaiting push to the remote store.
// LocalID carries the ledger-assigned id for created records so the syncer
// can remap it to the server-assigned id.
type OutboxEntry struct {
	Command  string          `json:"command"`
	Payload  json.RawMessage `json:"payload"`
	LocalID  string          `json:"local_id,omitempty"`
	QueuedAt time.Time       `json:"queued_at"`
}

// Open opens the ledger at path and prunes entries older than the retention
// window.
func Open(path string) (*Ledger, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	l := &Ledger{store: store, now: time.Now}
	if err := l.Prune(); err != nil {
		store.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Close() error {
	return l.store.Close()
}

// DeviceID returns the stable identifier this device syncs under, creating
// one on first use.
func (l *Ledger) DeviceID() (string, error) {
	var id string
	ok, err := l.store.Get(keyDeviceID, &id)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := l.store.Put(keyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Profile returns the stored profile, or defaults if none was saved yet.
func (l *Ledger) Profile() (model.UserProfile, error) {
	var p model.UserProfile
	ok, err := l.store.Get(keyProfile, &p)
	if err != nil {
		return model.UserProfile{}, err
	}
	if !ok {
		return model.DefaultProfile(), nil
	}
	return p, nil
}

// SetProfile replaces the profile in place and queues the update for sync.
func (l *Ledger) SetProfile(p model.UserProfile) error {
	if err := l.store.Put(keyProfile, p); err != nil {
		return err
	}
	return l.enqueue("updateProfile", p, "")
}

// Meals returns all retained meals ordered by time descending.
func (l *Ledger) Meals() ([]model.Meal, error) {
	meals := make([]model.Meal, 0)
	if _, err := l.store.Get(keyMeals, &meals); err != nil {
		return nil, err
	}
	sort.Slice(meals, func(i, j int) bool { return meals[i].Time.After(meals[j].Time) })
	return meals, nil
}

// AddMeal assigns local ids, persists the meal, and queues it for push.
// Meals with no foods are rejected.
func (l *Ledger) AddMeal(meal model.Meal) (model.Meal, error) {
	if len(meal.Foods) == 0 {
		return model.Meal{}, fmt.Errorf("meal must contain at least one food")
	}
	if meal.Time.IsZero() {
		meal.Time = l.now()
	}
	meal.ID = uuid.NewString()
	for i := range meal.Foods {
		meal.Foods[i].ID = uuid.NewString()
	}
	meal.Totals()

	meals, err := l.Meals()
	if err != nil {
		return model.Meal{}, err
	}
	meals = append(meals, meal)
	if err := l.store.Put(keyMeals, meals); err != nil {
		return model.Meal{}, err
	}
	if err := l.enqueue("addMeal", meal, meal.ID); err != nil {
		return model.Meal{}, err
	}
	return meal, nil
}

// DeleteMeal removes a meal by id. Unknown ids are a no-op and queue
// nothing.
func (l *Ledger) DeleteMeal(id string) error {
	meals, err := l.Meals()
	if err != nil {
		return err
	}
	kept := meals[:0]
	found := false
	for _, m := range meals {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return nil
	}
	if err := l.store.Put(keyMeals, kept); err != nil {
		return err
	}
	return l.enqueue("deleteMeal", map[string]string{"id": id}, "")
}

// Workouts returns all retained workouts ordered by time descending.
func (l *Ledger) Workouts() ([]model.WorkoutEntry, error) {
	items := make([]model.WorkoutEntry, 0)
	if _, err := l.store.Get(keyWorkouts, &items); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Time.After(items[j].Time) })
	return items, nil
}

// AddWorkout assigns a local id, persists the workout, and queues it.
func (l *Ledger) AddWorkout(w model.WorkoutEntry) (model.WorkoutEntry, error) {
	if w.Time.IsZero() {
		w.Time = l.now()
	}
	w.ID = uuid.NewString()

	items, err := l.Workouts()
	if err != nil {
		return model.WorkoutEntry{}, err
	}
	items = append(items, w)
	if err := l.store.Put(keyWorkouts, items); err != nil {
		return model.WorkoutEntry{}, err
	}
	if err := l.enqueue("addWorkout", w, w.ID); err != nil {
		return model.WorkoutEntry{}, err
	}
	return w, nil
}

// DeleteWorkout removes a workout by id; unknown ids are a no-op.
func (l *Ledger) DeleteWorkout(id string) error {
	items, err := l.Workouts()
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, w := range items {
		if w.ID == id {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return nil
	}
	if err := l.store.Put(keyWorkouts, kept); err != nil {
		return err
	}
	return l.enqueue("deleteWorkout", map[string]string{"id": id}, "")
}

// TodayWorkoutKcal sums the energy of workouts logged on today's local date.
func (l *Ledger) TodayWorkoutKcal() (int, error) {
	items, err := l.Workouts()
	if err != nil {
		return 0, err
	}
	today := model.DateKey(l.now())
	total := 0
	for _, w := range items {
		if model.DateKey(w.Time) == today {
			total += w.KcalBurned
		}
	}
	return total, nil
}

// WaterToday returns today's water log; the date key is recomputed on every
// call, never cached.
func (l *Ledger) WaterToday() (model.WaterLog, error) {
	date := model.DateKey(l.now())
	var liters float64
	if _, err := l.store.Get(waterKeyPrefix+date, &liters); err != nil {
		return model.WaterLog{}, err
	}
	return model.WaterLog{Date: date, Liters: liters}, nil
}

// SetWaterToday overwrites today's water volume, clamped to [0, 5] liters,
// and queues the upsert.
func (l *Ledger) SetWaterToday(liters float64) (model.WaterLog, error) {
	date := model.DateKey(l.now())
	log := model.WaterLog{Date: date, Liters: model.ClampWater(liters)}
	if err := l.store.Put(waterKeyPrefix+date, log.Liters); err != nil {
		return model.WaterLog{}, err
	}
	if err := l.enqueue("updateWater", log, ""); err != nil {
		return model.WaterLog{}, err
	}
	return log, nil
}

// AddWaterToday increments today's water volume by delta liters.
func (l *Ledger) AddWaterToday(delta float64) (model.WaterLog, error) {
	cur, err := l.WaterToday()
	if err != nil {
		return model.WaterLog{}, err
	}
	return l.SetWaterToday(cur.Liters + delta)
}

// DailyTargetInput bundles what the target engine needs from the ledger.
func (l *Ledger) DailyTargetInput() (model.UserProfile, int, error) {
	profile, err := l.Profile()
	if err != nil {
		return model.UserProfile{}, 0, err
	}
	kcal, err := l.TodayWorkoutKcal()
	if err != nil {
		return model.UserProfile{}, 0, err
	}
	return profile, kcal, nil
}

// Prune drops meals and workouts older than the retention window. An entry
// exactly at the boundary is dropped; anything strictly newer is retained.
func (l *Ledger) Prune() error {
	cutoff := l.now().Add(-RetentionWindow)

	meals, err := l.Meals()
	if err != nil {
		return err
	}
	keptMeals := meals[:0]
	for _, m := range meals {
		if m.Time.After(cutoff) {
			keptMeals = append(keptMeals, m)
		}
	}
	if len(keptMeals) != len(meals) {
		if err := l.store.Put(keyMeals, keptMeals); err != nil {
			return err
		}
	}

	workouts, err := l.Workouts()
	if err != nil {
		return err
	}
	keptWorkouts := workouts[:0]
	for _, w := range workouts {
		if w.Time.After(cutoff) {
			keptWorkouts = append(keptWorkouts, w)
		}
	}
	if len(keptWorkouts) != len(workouts) {
		if err := l.store.Put(keyWorkouts, keptWorkouts); err != nil {
			return err
		}
	}

	// Water days age out with the same window. Keys that do not parse as
	// dates are left for Check to report.
	waterKeys, err := l.store.Keys(waterKeyPrefix)
	if err != nil {
		return err
	}
	for _, key := range waterKeys {
		day, err := time.ParseInLocation("2006-01-02", strings.TrimPrefix(key, waterKeyPrefix), time.Local)
		if err != nil {
			continue
		}
		if day.Add(24 * time.Hour).After(cutoff) {
			continue
		}
		if err := l.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Outbox returns pending mutations in the order they were issued.
func (l *Ledger) Outbox() ([]OutboxEntry, error) {
	entries := make([]OutboxEntry, 0)
	if _, err := l.store.Get(keyOutbox, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DropOutboxHead removes the first n entries after they were pushed.
func (l *Ledger) DropOutboxHead(n int) error {
	entries, err := l.Outbox()
	if err != nil {
		return err
	}
	if n > len(entries) {
		n = len(entries)
	}
	return l.store.Put(keyOutbox, entries[n:])
}

func (l *Ledger) enqueue(command string, payload any, localID string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", command, err)
	}
	entries, err := l.Outbox()
	if err != nil {
		return err
	}
	entries = append(entries, OutboxEntry{
		Command:  command,
		Payload:  raw,
		LocalID:  localID,
		QueuedAt: l.now(),
	})
	return l.store.Put(keyOutbox, entries)
}

// AdoptMealID rewrites a locally assigned meal id to the server-assigned
// one after a successful push. Pending deleteMeal payloads in the outbox are
// rewritten too, so the translation survives an interrupted flush.
func (l *Ledger) AdoptMealID(localID, serverID string) error {
	meals, err := l.Meals()
	if err != nil {
		return err
	}
	changed := false
	for i := range meals {
		if meals[i].ID == localID {
			meals[i].ID = serverID
			changed = true
		}
	}
	if changed {
		if err := l.store.Put(keyMeals, meals); err != nil {
			return err
		}
	}
	return l.rewriteQueuedDeleteIDs("deleteMeal", localID, serverID)
}

// AdoptWorkoutID rewrites a locally assigned workout id to the server's,
// including pending deleteWorkout payloads in the outbox.
func (l *Ledger) AdoptWorkoutID(localID, serverID string) error {
	items, err := l.Workouts()
	if err != nil {
		return err
	}
	changed := false
	for i := range items {
		if items[i].ID == localID {
			items[i].ID = serverID
			changed = true
		}
	}
	if changed {
		if err := l.store.Put(keyWorkouts, items); err != nil {
			return err
		}
	}
	return l.rewriteQueuedDeleteIDs("deleteWorkout", localID, serverID)
}

// rewriteQueuedDeleteIDs durably retargets queued delete commands from a
// local id to the server-assigned one. Without this a sync that is
// interrupted between pushing a create and its queued delete would retry the
// delete with the stale local id, the server would treat it as a no-op, and
// the deleted record would resurrect on the next pull.
func (l *Ledger) rewriteQueuedDeleteIDs(command, localID, serverID string) error {
	entries, err := l.Outbox()
	if err != nil {
		return err
	}
	changed := false
	for i := range entries {
		if entries[i].Command != command {
			continue
		}
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(entries[i].Payload, &p); err != nil || p.ID != localID {
			continue
		}
		raw, err := json.Marshal(map[string]string{"id": serverID})
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", command, err)
		}
		entries[i].Payload = raw
		changed = true
	}
	if !changed {
		return nil
	}
	return l.store.Put(keyOutbox, entries)
}

// Rehydrate replaces the ledger's state with an authoritative remote
// snapshot. The outbox is left untouched; callers flush it before pulling.
func (l *Ledger) Rehydrate(profile model.UserProfile, meals []model.Meal, workouts []model.WorkoutEntry, waterLiters float64) error {
	if err := l.store.Put(keyProfile, profile); err != nil {
		return err
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	if err := l.store.Put(keyMeals, meals); err != nil {
		return err
	}
	if workouts == nil {
		workouts = []model.WorkoutEntry{}
	}
	if err := l.store.Put(keyWorkouts, workouts); err != nil {
		return err
	}
	date := model.DateKey(l.now())
	return l.store.Put(waterKeyPrefix+date, model.ClampWater(waterLiters))
}
