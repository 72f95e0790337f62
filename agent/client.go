package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/medassist/fieldchat/core/protocol"
	"github.com/medassist/fieldchat/core/response"
)

const maxErrorBody = 400

// Client is an OpenAI-compatible chat completions client. Request deadlines
// come from the caller's context; the client itself sets no timeout.
type Client struct {
	url        string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a chat completions client for the given endpoint.
func NewClient(url, model, apiKey string) *Client {
	return &Client{
		url:        url,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (c *Client) Complete(ctx context.Context, messages []protocol.Message, opts ...map[string]any) (*response.ChatResponse, error) {
	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
	}
	for _, opt := range opts {
		for k, v := range opt {
			payload[k] = v
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat non-success status=%d body=%s", resp.StatusCode, truncate(string(raw), maxErrorBody))
	}

	parsed, err := response.ParseChat(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, truncate(string(raw), maxErrorBody))
	}
	return parsed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
