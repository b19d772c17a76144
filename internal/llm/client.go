// Package llm talks to the AnythingLLM-style completion service that
// generates mind-map markdown: workspace management plus single-shot
// chat completions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the AI collaborator consumed by the pipeline.
type Client interface {
	// EnsureWorkspace returns the workspace slug for a room, creating
	// the workspace if it does not exist yet. Idempotent.
	EnsureWorkspace(ctx context.Context, roomCode, title string) (string, error)

	// Complete sends one prompt to a workspace and returns the raw text
	// response. taskType labels the call for stats and logs.
	Complete(ctx context.Context, prompt, workspaceSlug, taskType string) (string, error)
}

// AnythingLLMClient implements Client against the AnythingLLM HTTP API.
type AnythingLLMClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// Stats records call latencies when non-nil.
	Stats *Stats
}

func NewAnythingLLMClient(baseURL, apiKey string, timeout time.Duration, stats *Stats) *AnythingLLMClient {
	return &AnythingLLMClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		Stats: stats,
	}
}

// WorkspaceSlug derives the canonical workspace slug for a room code.
func WorkspaceSlug(roomCode string) string {
	return "room-" + strings.ToLower(roomCode)
}

type workspaceListResponse struct {
	Workspace []struct {
		Slug string `json:"slug"`
	} `json:"workspace"`
}

type newWorkspaceRequest struct {
	Name string `json:"name"`
}

type newWorkspaceResponse struct {
	Workspace struct {
		Slug string `json:"slug"`
	} `json:"workspace"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type chatResponse struct {
	TextResponse string `json:"textResponse"`
	Error        string `json:"error"`
}

func (c *AnythingLLMClient) EnsureWorkspace(ctx context.Context, roomCode, title string) (string, error) {
	slug := WorkspaceSlug(roomCode)

	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/workspace/"+url.PathEscape(slug), nil)
	if err != nil {
		return "", fmt.Errorf("check workspace %s: %w", slug, err)
	}
	if status == http.StatusOK {
		var resp workspaceListResponse
		if err := json.Unmarshal(body, &resp); err == nil && len(resp.Workspace) > 0 {
			return resp.Workspace[0].Slug, nil
		}
	}

	status, body, err = c.do(ctx, http.MethodPost, "/api/v1/workspace/new", newWorkspaceRequest{Name: title})
	if err != nil {
		return "", fmt.Errorf("create workspace %s: %w", slug, err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", apiError("create workspace", status, body)
	}
	var created newWorkspaceResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decode workspace response: %w", err)
	}
	if created.Workspace.Slug == "" {
		return "", fmt.Errorf("create workspace %s: no slug in response", slug)
	}
	return created.Workspace.Slug, nil
}

func (c *AnythingLLMClient) Complete(ctx context.Context, prompt, workspaceSlug, taskType string) (string, error) {
	start := time.Now()
	status, body, err := c.do(ctx, http.MethodPost,
		"/api/v1/workspace/"+url.PathEscape(workspaceSlug)+"/chat",
		chatRequest{Message: prompt, Mode: "chat"})
	if c.Stats != nil {
		c.Stats.Record(taskType, time.Since(start))
	}
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if status != http.StatusOK {
		return "", apiError("completion", status, body)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("completion error: %s", resp.Error)
	}
	if strings.TrimSpace(resp.TextResponse) == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.TextResponse, nil
}

func (c *AnythingLLMClient) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func apiError(op string, status int, body []byte) error {
	if status == http.StatusTooManyRequests || status >= 500 {
		return &RetryableError{Op: op, StatusCode: status, Message: string(body)}
	}
	return fmt.Errorf("%s status %d: %s", op, status, truncate(string(body), 200))
}

// Close releases idle connections.
func (c *AnythingLLMClient) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError marks a transient upstream failure (rate limit or 5xx).
// The pipeline does not retry; the classification feeds logs and error
// reporting.
type RetryableError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s transient failure (status %d): %s", e.Op, e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
