package advisor_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/EZP98/fitness-tracker/internal/provider/advisor"
)

func sampleSnapshot() advisor.Snapshot {
	return advisor.Snapshot{
		WeightKg:       82,
		HeightCm:       178,
		Age:            30,
		Goal:           "cut",
		TodayKcal:      1450,
		TargetKcal:     2348,
		TodayProteinG:  90,
		TargetProteinG: 165,
		WorkoutDone:    true,
	}
}

func completionBody(content string) string {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(raw)
}

func TestGetAdviceParsesCompletion(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  Mangia più proteine stasera.  ")))
	}))
	defer srv.Close()

	c := &advisor.Client{APIKey: "test-key", BaseURL: srv.URL}
	advice, err := c.GetAdvice(context.Background(), sampleSnapshot())
	if err != nil {
		t.Fatalf("get advice: %v", err)
	}
	if advice != "Mangia più proteine stasera." {
		t.Fatalf("advice = %q", advice)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
}

func TestGetAdviceRequiresAPIKey(t *testing.T) {
	t.Parallel()
	c := &advisor.Client{}
	if _, err := c.GetAdvice(context.Background(), sampleSnapshot()); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestGetAdviceRejectsEmptyChoices(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := &advisor.Client{APIKey: "test-key", BaseURL: srv.URL}
	if _, err := c.GetAdvice(context.Background(), sampleSnapshot()); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestAdvisorFallsBackOnGatewayFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := advisor.NewAdvisor(&advisor.Client{APIKey: "test-key", BaseURL: srv.URL})
	advice, err := a.Request(context.Background(), sampleSnapshot())
	if err != nil {
		t.Fatalf("advisor must degrade, not fail: %v", err)
	}
	if advice != advisor.FallbackMessage {
		t.Fatalf("advice = %q, want fallback message", advice)
	}
}

func TestAdvisorSupersedesInFlightRequest(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
			w.Write([]byte(completionBody("stale advice")))
			return
		}
		w.Write([]byte(completionBody("fresh advice")))
	}))
	defer srv.Close()

	a := advisor.NewAdvisor(&advisor.Client{APIKey: "test-key", BaseURL: srv.URL})

	type outcome struct {
		advice string
		err    error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		advice, err := a.Request(context.Background(), sampleSnapshot())
		firstDone <- outcome{advice, err}
	}()

	// Give the first request time to reach the blocked handler, then start
	// a second one which must cancel and supersede it.
	time.Sleep(50 * time.Millisecond)
	advice, err := a.Request(context.Background(), sampleSnapshot())
	close(release)

	if err != nil {
		t.Fatalf("latest request: %v", err)
	}
	if advice != "fresh advice" {
		t.Fatalf("latest advice = %q, want fresh advice", advice)
	}

	got := <-firstDone
	if !errors.Is(got.err, advisor.ErrSuperseded) {
		t.Fatalf("first request should report superseded, got advice=%q err=%v", got.advice, got.err)
	}
}
