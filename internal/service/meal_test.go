package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/service"
)

func testMeal(at time.Time) model.Meal {
	return model.Meal{
		MealType: "pranzo",
		Time:     at,
		Foods: []model.FoodEntry{
			{Name: "Pasta", Kcal: 236, ProteinG: 9, CarbsG: 45, FatG: 2, PortionG: 180},
			{Name: "Pollo", Kcal: 248, ProteinG: 47, CarbsG: 0, FatG: 5, PortionG: 150},
		},
	}
}

func TestAddMealAssignsServerID(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	id, err := service.AddMeal(sqldb, "device-1", testMeal(time.Now()))
	if err != nil {
		t.Fatalf("add meal: %v", err)
	}
	if id == "" {
		t.Fatal("expected a server-assigned meal id")
	}

	meals, err := service.MealsSince(sqldb, "device-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	got := meals[0]
	if got.ID != id {
		t.Fatalf("meal id mismatch: %s vs %s", got.ID, id)
	}
	if got.TotalKcal != 484 || got.TotalProteinG != 56 {
		t.Fatalf("totals not recomputed from foods: %+v", got)
	}
	if len(got.Foods) != 2 || got.Foods[0].Name != "Pasta" || got.Foods[1].Name != "Pollo" {
		t.Fatalf("food order not preserved: %+v", got.Foods)
	}
}

func TestAddMealRejectsEmptyFoods(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	m := testMeal(time.Now())
	m.Foods = nil
	_, err := service.AddMeal(sqldb, "device-1", m)
	if !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty food list, got %v", err)
	}
}

func TestDeleteMealScopedByUser(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	for _, device := range []string{"device-1", "device-2"} {
		if _, err := service.BootstrapUser(sqldb, device); err != nil {
			t.Fatalf("bootstrap %s: %v", device, err)
		}
	}

	id, err := service.AddMeal(sqldb, "device-1", testMeal(time.Now()))
	if err != nil {
		t.Fatalf("add meal: %v", err)
	}

	// Another user's delete for this id is a silent no-op.
	if err := service.DeleteMeal(sqldb, "device-2", id); err != nil {
		t.Fatalf("cross-user delete should be a no-op, got %v", err)
	}
	meals, err := service.MealsSince(sqldb, "device-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("meal should survive a foreign delete, got %d meals", len(meals))
	}

	// Deleting an unknown id is also a no-op.
	if err := service.DeleteMeal(sqldb, "device-1", "no-such-id"); err != nil {
		t.Fatalf("unknown-id delete should be a no-op, got %v", err)
	}

	if err := service.DeleteMeal(sqldb, "device-1", id); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	meals, err = service.MealsSince(sqldb, "device-1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list meals after delete: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected no meals after delete, got %d", len(meals))
	}
}

func TestMealsSinceWindowAndOrder(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	now := time.Now()
	inside := testMeal(now.Add(-2 * time.Hour))
	older := testMeal(now.Add(-6 * 24 * time.Hour))
	outside := testMeal(now.Add(-8 * 24 * time.Hour))
	for _, m := range []model.Meal{inside, older, outside} {
		if _, err := service.AddMeal(sqldb, "device-1", m); err != nil {
			t.Fatalf("add meal: %v", err)
		}
	}

	meals, err := service.MealsSince(sqldb, "device-1", now.Add(-service.RetentionWindow))
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals inside the 7-day window, got %d", len(meals))
	}
	if !meals[0].Time.After(meals[1].Time) {
		t.Fatalf("meals not ordered by time descending: %v then %v", meals[0].Time, meals[1].Time)
	}
}
