package service_test

import (
	"testing"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/service"
)

func TestUpsertWaterLastWriteWins(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	date := model.DateKey(time.Now())
	if err := service.UpsertWater(sqldb, "device-1", date, 1.5); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := service.UpsertWater(sqldb, "device-1", date, 2.25); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := service.WaterForDate(sqldb, "device-1", date)
	if err != nil {
		t.Fatalf("read water: %v", err)
	}
	if got != 2.25 {
		t.Fatalf("water = %g, want 2.25 (last write wins)", got)
	}

	var rows int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM water_logs`).Scan(&rows); err != nil {
		t.Fatalf("count water rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single row after two upserts, got %d", rows)
	}
}

func TestUpsertWaterClampsRange(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	date := model.DateKey(time.Now())
	if err := service.UpsertWater(sqldb, "device-1", date, 9.5); err != nil {
		t.Fatalf("upsert above max: %v", err)
	}
	got, err := service.WaterForDate(sqldb, "device-1", date)
	if err != nil {
		t.Fatalf("read water: %v", err)
	}
	if got != model.MaxWaterLiters {
		t.Fatalf("water = %g, want clamp at %g", got, model.MaxWaterLiters)
	}
}

func TestWaterForDateDefaultsToZero(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	got, err := service.WaterForDate(sqldb, "device-1", "2026-01-01")
	if err != nil {
		t.Fatalf("read water: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0 liters for an absent date, got %g", got)
	}
}
