package service_test

import (
	"errors"
	"testing"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/service"
)

func TestBootstrapUserIsIdempotent(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	first, err := service.BootstrapUser(sqldb, "device-1")
	if err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	if first != model.DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", first)
	}

	second, err := service.BootstrapUser(sqldb, "device-1")
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if second != first {
		t.Fatalf("second bootstrap returned different profile: %+v", second)
	}

	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM users WHERE device_id = 'device-1'`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user row, got %d", count)
	}
}

func TestBootstrapUserRequiresDeviceID(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	_, err := service.BootstrapUser(sqldb, "  ")
	if !errors.Is(err, service.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	want := model.UserProfile{
		WeightKg:      82.5,
		HeightCm:      180,
		Age:           34,
		Gender:        model.GenderFemale,
		ActivityLevel: model.ActivityActive,
		Goal:          model.GoalBulk,
	}
	if err := service.UpdateProfile(sqldb, "device-1", want); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	got, err := service.BootstrapUser(sqldb, "device-1")
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if got != want {
		t.Fatalf("profile round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.BootstrapUser(sqldb, "device-1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.UserProfile)
	}{
		{"zero weight", func(p *model.UserProfile) { p.WeightKg = 0 }},
		{"negative height", func(p *model.UserProfile) { p.HeightCm = -170 }},
		{"zero age", func(p *model.UserProfile) { p.Age = 0 }},
		{"bad gender", func(p *model.UserProfile) { p.Gender = "other" }},
		{"bad activity", func(p *model.UserProfile) { p.ActivityLevel = "couch" }},
		{"bad goal", func(p *model.UserProfile) { p.Goal = "shred" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.DefaultProfile()
			tt.mutate(&p)
			err := service.UpdateProfile(sqldb, "device-1", p)
			if !errors.Is(err, service.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestUpdateProfileUnknownDevice(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	err := service.UpdateProfile(sqldb, "ghost", model.DefaultProfile())
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
