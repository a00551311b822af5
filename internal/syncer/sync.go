package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EZP98/fitness-tracker/internal/ledger"
)

// Report summarizes one reconciliation pass.
type Report struct {
	Pushed  int
	Adopted int
	Pulled  bool
}

// Sync flushes the ledger's outbox in issue order, then rehydrates the
// ledger from a fresh pull. A push failure stops the flush with the
// remaining outbox intact, so the next sync resumes where this one stopped
// and the ledger stays authoritative offline.
//
// The local ledger and the remote store assign ids independently; the server
// is the id authority. After a successful create push the locally assigned
// id is rewritten to the server's, and later queued deletes referencing the
// local id are translated before being sent.
func Sync(ctx context.Context, l *ledger.Ledger, client *Client) (Report, error) {
	var report Report

	entries, err := l.Outbox()
	if err != nil {
		return report, err
	}

	adopted := map[string]string{}
	for _, entry := range entries {
		payload := entry.Payload
		if entry.Command == "deleteMeal" || entry.Command == "deleteWorkout" {
			payload, err = translateDeleteID(payload, adopted)
			if err != nil {
				return report, err
			}
		}

		result, err := client.Push(ctx, entry.Command, payload)
		if err != nil {
			return report, fmt.Errorf("flush outbox: %w", err)
		}
		report.Pushed++

		if result.ID != "" && entry.LocalID != "" && result.ID != entry.LocalID {
			adopted[entry.LocalID] = result.ID
			switch entry.Command {
			case "addMeal":
				if err := l.AdoptMealID(entry.LocalID, result.ID); err != nil {
					return report, err
				}
			case "addWorkout":
				if err := l.AdoptWorkoutID(entry.LocalID, result.ID); err != nil {
					return report, err
				}
			}
			report.Adopted++
		}

		if err := l.DropOutboxHead(1); err != nil {
			return report, err
		}
	}

	snap, err := client.Pull(ctx)
	if err != nil {
		return report, fmt.Errorf("pull snapshot: %w", err)
	}
	if err := l.Rehydrate(snap.Profile, snap.Meals, snap.Workouts, snap.WaterLiters); err != nil {
		return report, err
	}
	report.Pulled = true
	return report, nil
}

func translateDeleteID(payload json.RawMessage, adopted map[string]string) (json.RawMessage, error) {
	var p struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode delete payload: %w", err)
	}
	serverID, ok := adopted[p.ID]
	if !ok {
		return payload, nil
	}
	out, err := json.Marshal(map[string]string{"id": serverID})
	if err != nil {
		return nil, fmt.Errorf("encode delete payload: %w", err)
	}
	return out, nil
}
