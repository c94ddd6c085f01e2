// Package feedback hands completed repetitions to the external biomechanics
// feedback service and routes its responses back to live session state
// without ever blocking frame processing.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/repcoach/internal/motion"
)

// Feedback is the service's evaluation of one repetition.
type Feedback struct {
	Status   string `json:"status"` // "good" | "warning" | "correction"
	Message  string `json:"message"`
	AudioCue string `json:"audio_cue,omitempty"`
}

// Client sends rep evaluations to the feedback service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the feedback service. timeout bounds each
// evaluation request end to end.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Evaluate POSTs a rep event and returns the service's feedback. Retries up
// to 3 times with exponential backoff on failure.
func (c *Client) Evaluate(ctx context.Context, ev motion.RepEvent) (*Feedback, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshaling rep event: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/api/v1/evaluate", bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			var fb Feedback
			if err := json.Unmarshal(body, &fb); err != nil {
				return nil, fmt.Errorf("decoding feedback: %w", err)
			}
			return &fb, nil
		}
		lastErr = fmt.Errorf("evaluate failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
