package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Agent renders a flow-description line into an image. A nil image with a
// nil error means the agent had nothing to draw; both outcomes degrade to
// the placeholder path at the call site.
type Agent interface {
	Render(ctx context.Context, flowLine string) ([]byte, error)
}

// HTTPAgent calls an external diagram-rendering HTTP service.
type HTTPAgent struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPAgent creates an agent for the renderer at baseURL. apiKey may be
// empty for unauthenticated renderers.
func NewHTTPAgent(baseURL, apiKey string, timeout time.Duration) *HTTPAgent {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAgent{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type renderRequest struct {
	Flow   string `json:"flow"`
	Format string `json:"format"`
}

// Render posts the flow line to the renderer and returns the image bytes.
// 429 and 5xx responses come back as *RetryableError.
func (a *HTTPAgent) Render(ctx context.Context, flowLine string) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Flow: flowLine, Format: "png"})
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("diagram agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("diagram agent status %d: %s", resp.StatusCode, string(respBody))
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(img) == 0 {
		return nil, nil
	}
	return img, nil
}

// Close releases idle connections.
func (a *HTTPAgent) Close() {
	a.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient agent failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
