package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.openai.com"

// FallbackMessage is shown when the gateway is unreachable or misbehaves;
// advisory failures never propagate as errors to the rest of the system.
const FallbackMessage = "Il consiglio non è al momento disponibile. Continua a seguire il tuo piano."

// ErrSuperseded reports that a newer advice request was triggered while this
// one was in flight; only the most recent response is surfaced.
var ErrSuperseded = errors.New("advice request superseded")

// Snapshot is the plain metrics bundle handed to the advice provider.
type Snapshot struct {
	WeightKg       float64 `json:"weight_kg"`
	HeightCm       float64 `json:"height_cm"`
	Age            int     `json:"age"`
	Goal           string  `json:"goal"`
	TodayKcal      int     `json:"today_kcal"`
	TargetKcal     int     `json:"target_kcal"`
	TodayProteinG  int     `json:"today_protein_g"`
	TargetProteinG int     `json:"target_protein_g"`
	WorkoutDone    bool    `json:"workout_done"`
}

const systemPrompt = `You are a concise nutrition coach. Given today's metrics versus the user's targets, reply with 2-3 short sentences of practical advice in the user's language. No lists, no headers, plain text only.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls an OpenAI-compatible chat completions endpoint with a metrics
// snapshot and returns the free-text advice.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func (c *Client) GetAdvice(ctx context.Context, snap Snapshot) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", fmt.Errorf("missing advice API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	user := fmt.Sprintf(
		"Profile: %.0f kg, %.0f cm, %d years, goal %s. Today: %d of %d kcal eaten, %d of %d g protein, workout done: %t.",
		snap.WeightKg, snap.HeightCm, snap.Age, snap.Goal,
		snap.TodayKcal, snap.TargetKcal, snap.TodayProteinG, snap.TargetProteinG, snap.WorkoutDone,
	)
	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute advice request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read advice response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice request failed with status %d", resp.StatusCode)
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode advice response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("advice response contained no content")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// Advisor serializes advice requests with superseding semantics: triggering
// a new request cancels the one in flight, and a response is surfaced only
// if no newer request was started while it ran. Gateway failures degrade to
// FallbackMessage instead of propagating.
type Advisor struct {
	client *Client

	mu     sync.Mutex
	seq    int
	cancel context.CancelFunc
}

func NewAdvisor(client *Client) *Advisor {
	return &Advisor{client: client}
}

func (a *Advisor) Request(ctx context.Context, snap Snapshot) (string, error) {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	text, err := a.client.GetAdvice(ctx, snap)

	a.mu.Lock()
	latest := seq == a.seq
	a.mu.Unlock()
	if !latest {
		return "", ErrSuperseded
	}
	if err != nil {
		return FallbackMessage, nil
	}
	return text, nil
}
