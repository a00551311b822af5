package server_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EZP98/fitness-tracker/internal/db"
	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/server"
	"github.com/EZP98/fitness-tracker/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sync.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	ts := httptest.NewServer(server.New(sqldb, nil).Router())
	t.Cleanup(ts.Close)
	return ts, sqldb
}

func doPush(t *testing.T, ts *httptest.Server, deviceID, command string, payload any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	body, err := json.Marshal(map[string]any{"command": command, "payload": json.RawMessage(raw)})
	if err != nil {
		t.Fatalf("marshal push body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/sync/push", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build push request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func bootstrap(t *testing.T, ts *httptest.Server, deviceID string) {
	t.Helper()
	resp, err := http.Get(ts.URL + "/api/sync/pull?device_id=" + deviceID)
	if err != nil {
		t.Fatalf("bootstrap pull for %s: %v", deviceID, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bootstrap pull for %s = %d, want 200", deviceID, resp.StatusCode)
	}
}

func TestPullBootstrapsUnknownDevice(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/sync/pull?device_id=fresh-device")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pull status = %d, want 200", resp.StatusCode)
	}
	snap := decode[service.Snapshot](t, resp)
	if snap.Profile != model.DefaultProfile() {
		t.Fatalf("expected default profile on first contact, got %+v", snap.Profile)
	}
	if len(snap.Meals) != 0 || len(snap.Workouts) != 0 || snap.WaterLiters != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestPullRequiresDeviceID(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/sync/pull")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("pull without device id = %d, want 400", resp.StatusCode)
	}
}

func TestPushAddMealReturnsServerID(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)
	bootstrap(t, ts, "device-1")

	meal := model.Meal{
		MealType: "colazione",
		Time:     time.Now(),
		Foods:    []model.FoodEntry{{Name: "Avena", Kcal: 156, ProteinG: 7, CarbsG: 27, FatG: 3, PortionG: 40}},
	}
	resp := doPush(t, ts, "device-1", server.CmdAddMeal, meal)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("addMeal status = %d, want 200", resp.StatusCode)
	}
	out := decode[map[string]string](t, resp)
	if out["id"] == "" {
		t.Fatalf("expected a server-assigned id, got %v", out)
	}
}

func TestPushUnrecognizedCommand(t *testing.T) {
	t.Parallel()
	ts, sqldb := newTestServer(t)

	resp := doPush(t, ts, "device-1", "truncateEverything", map[string]any{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown command status = %d, want 400", resp.StatusCode)
	}

	// No partial effect: the unknown command must not even bootstrap a user.
	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("unrecognized command had side effects: %d users", count)
	}
}

func TestPushProfileUnknownUserIsNotFound(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)

	resp := doPush(t, ts, "never-pulled", server.CmdUpdateProfile, model.DefaultProfile())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("updateProfile for unknown user = %d, want 404", resp.StatusCode)
	}
}

func TestWaterUpsertOverHTTP(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)
	bootstrap(t, ts, "device-1")

	date := model.DateKey(time.Now())
	for _, liters := range []float64{0.5, 1.75} {
		resp := doPush(t, ts, "device-1", server.CmdUpdateWater, map[string]any{"date": date, "liters": liters})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("updateWater status = %d, want 200", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/sync/pull?device_id=device-1")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	snap := decode[service.Snapshot](t, resp)
	if snap.WaterLiters != 1.75 {
		t.Fatalf("water = %g, want 1.75 (last write wins)", snap.WaterLiters)
	}
}

func TestPullHonorsDeviceSuppliedDate(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)
	bootstrap(t, ts, "device-1")

	// A device a timezone ahead of the server logs water under its own
	// calendar day and must read it back under that same day.
	deviceDate := "2025-01-15"
	resp := doPush(t, ts, "device-1", server.CmdUpdateWater, map[string]any{"date": deviceDate, "liters": 2.5})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("updateWater status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	pull, err := http.Get(ts.URL + "/api/sync/pull?device_id=device-1&date=" + deviceDate)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	snap := decode[service.Snapshot](t, pull)
	if snap.WaterLiters != 2.5 {
		t.Fatalf("water = %g, want 2.5 for the device's date", snap.WaterLiters)
	}

	pull, err = http.Get(ts.URL + "/api/sync/pull?device_id=device-1")
	if err != nil {
		t.Fatalf("pull without date: %v", err)
	}
	snap = decode[service.Snapshot](t, pull)
	if snap.WaterLiters != 0 {
		t.Fatalf("water = %g, want 0 when falling back to the server's own date", snap.WaterLiters)
	}

	bad, err := http.Get(ts.URL + "/api/sync/pull?device_id=device-1&date=yesterday")
	if err != nil {
		t.Fatalf("pull with bad date: %v", err)
	}
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed date status = %d, want 400", bad.StatusCode)
	}
}

func TestTenancyIsolation(t *testing.T) {
	t.Parallel()
	ts, _ := newTestServer(t)
	bootstrap(t, ts, "device-a")
	bootstrap(t, ts, "device-b")

	meal := model.Meal{
		MealType: "cena",
		Time:     time.Now(),
		Foods:    []model.FoodEntry{{Name: "Salmone", Kcal: 260, ProteinG: 26, CarbsG: 0, FatG: 17, PortionG: 125}},
	}
	resp := doPush(t, ts, "device-a", server.CmdAddMeal, meal)
	out := decode[map[string]string](t, resp)
	mealID := out["id"]

	// device-b deleting device-a's meal must be a silent no-op.
	resp = doPush(t, ts, "device-b", server.CmdDeleteMeal, map[string]string{"id": mealID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cross-tenant delete status = %d, want 200 no-op", resp.StatusCode)
	}
	resp.Body.Close()

	pull, err := http.Get(ts.URL + "/api/sync/pull?device_id=device-a")
	if err != nil {
		t.Fatalf("pull device-a: %v", err)
	}
	snap := decode[service.Snapshot](t, pull)
	if len(snap.Meals) != 1 {
		t.Fatalf("device-a meal should survive device-b's delete, got %d meals", len(snap.Meals))
	}
}
