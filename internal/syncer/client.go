package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/EZP98/fitness-tracker/internal/model"
	"github.com/EZP98/fitness-tracker/internal/service"
)

// Client talks to the remote sync store over HTTP+JSON. It never retries
// internally: a failed call leaves local state unchanged and the caller
// decides when to try again.
type Client struct {
	BaseURL    string
	DeviceID   string
	HTTPClient *http.Client
}

// PushResult carries the server's answer to a push: a server-assigned id for
// create commands, or a bare success for the rest.
type PushResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *Client) baseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Pull fetches the authoritative snapshot for this device, creating the
// remote user record on first contact. The device's local calendar date
// rides along so the water value comes back for the right day regardless of
// the server's timezone.
func (c *Client) Pull(ctx context.Context) (service.Snapshot, error) {
	url := c.baseURL() + "/api/sync/pull?date=" + model.DateKey(time.Now())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return service.Snapshot{}, fmt.Errorf("create pull request: %w", err)
	}
	req.Header.Set("X-Device-ID", c.DeviceID)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return service.Snapshot{}, fmt.Errorf("execute pull: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return service.Snapshot{}, fmt.Errorf("read pull response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return service.Snapshot{}, remoteError("pull", resp.StatusCode, body)
	}
	var snap service.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return service.Snapshot{}, fmt.Errorf("decode pull response: %w", err)
	}
	return snap, nil
}

// Push applies one tagged command against the remote store.
func (c *Client) Push(ctx context.Context, command string, payload json.RawMessage) (PushResult, error) {
	reqBody, err := json.Marshal(map[string]any{"command": command, "payload": payload})
	if err != nil {
		return PushResult{}, fmt.Errorf("marshal push body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/api/sync/push", bytes.NewReader(reqBody))
	if err != nil {
		return PushResult{}, fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", c.DeviceID)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return PushResult{}, fmt.Errorf("execute push %s: %w", command, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PushResult{}, fmt.Errorf("read push response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return PushResult{}, remoteError("push "+command, resp.StatusCode, body)
	}
	var result PushResult
	if err := json.Unmarshal(body, &result); err != nil {
		return PushResult{}, fmt.Errorf("decode push response: %w", err)
	}
	return result, nil
}

func remoteError(op string, status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return fmt.Errorf("%s failed with status %d: %s", op, status, er.Error)
	}
	return fmt.Errorf("%s failed with status %d", op, status)
}
