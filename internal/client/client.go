// Package client provides a typed HTTP client for the VoiceTodo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/voicetodo/voicetodo/internal/handler/dto"
	"github.com/voicetodo/voicetodo/internal/model"
)

// APIError is a structured error returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to a VoiceTodo server with a session token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given server and session token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			// Transcription requests sit behind two upstream model calls
			Timeout: 150 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTodos returns all todos for the authenticated user.
func (c *Client) ListTodos(ctx context.Context) ([]dto.TodoResponse, error) {
	var out []dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo creates a todo and returns the stored record.
func (c *Client) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo applies a partial update and returns the updated record.
func (c *Client) UpdateTodo(ctx context.Context, id string, req dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	var out dto.TodoResponse
	if err := c.do(ctx, http.MethodPatch, "/api/todos/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id, nil, nil)
}

// Summary fetches today's and overdue todos. tz may be empty for UTC.
func (c *Client) Summary(ctx context.Context, tz string) (*dto.SummaryResponse, error) {
	path := "/api/todos/summary"
	if tz != "" {
		path += "?tz=" + tz
	}
	var out dto.SummaryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transcribe sends an audio data URI through the voice pipeline and
// returns the extracted task drafts. Nothing is persisted; callers
// create todos from the drafts they want to keep.
func (c *Client) Transcribe(ctx context.Context, audioDataURI string) ([]model.TaskDraft, error) {
	var out []model.TaskDraft
	req := dto.TranscribeRequest{Audio: audioDataURI}
	if err := c.do(ctx, http.MethodPost, "/api/transcribe", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the session token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// do sends one request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError turns an error response into an APIError, falling back
// to the raw body when it isn't the structured shape.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr dto.ErrorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    apiErr.Code,
			Message: apiErr.Error,
		}
	}

	return &APIError{
		Status:  resp.StatusCode,
		Code:    "UNKNOWN",
		Message: strings.TrimSpace(string(data)),
	}
}
