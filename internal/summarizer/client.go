// Package summarizer is the HTTP client for the downstream
// summarization engine. The engine is an opaque collaborator; any
// non-2xx response or transport failure means the metered action did
// not happen.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.Summarizer = (*Client)(nil)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type summarizeRequest struct {
	URL string `json:"url"`
}

type summarizeResponse struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Summarize posts the video URL to the engine and returns its result.
func (c *Client) Summarize(ctx context.Context, videoURL string) (model.SummaryResult, error) {
	body, err := json.Marshal(summarizeRequest{URL: videoURL})
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("failed to marshal summarize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(body))
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("failed to build summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("summarize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.SummaryResult{}, fmt.Errorf("summarize engine returned status %d", resp.StatusCode)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.SummaryResult{}, fmt.Errorf("failed to decode summarize response: %w", err)
	}
	if out.Summary == "" {
		return model.SummaryResult{}, fmt.Errorf("summarize engine returned empty summary")
	}

	return model.SummaryResult{Title: out.Title, Content: out.Summary}, nil
}
