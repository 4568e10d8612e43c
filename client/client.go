// Package client is the Go client for the task manager HTTP API, together
// with an in-memory session that mirrors the server-side task collection.
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

	"github.com/example/task-manager/domain/task"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Auth is the result of registering or logging in.
type Auth struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      User   `json:"user"`
}

// TaskDraft holds the writable task fields for creation and AI calls.
type TaskDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	DueDate     *task.Date    `json:"due_date,omitempty"`
	Priority    task.Priority `json:"priority,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	DueDate     *task.Date     `json:"due_date,omitempty"`
	Priority    *task.Priority `json:"priority,omitempty"`
	Completed   *bool          `json:"completed,omitempty"`
}

// ParseResult is the outcome of parsing free text into task fields.
type ParseResult struct {
	Fields TaskDraft `json:"fields"`
	Source string    `json:"source"`
	Reason string    `json:"reason,omitempty"`
}

// Client talks to the task manager API. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL (including the
// /api prefix).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// Register creates an account and stores the issued token on the client.
func (c *Client) Register(ctx context.Context, email, password string) (*Auth, error) {
	body := map[string]string{"email": email, "password": password}
	var auth Auth
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &auth); err != nil {
		return nil, err
	}
	c.token = auth.Token
	return &auth, nil
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	body := map[string]string{"email": email, "password": password}
	var auth Auth
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &auth); err != nil {
		return nil, err
	}
	c.token = auth.Token
	return &auth, nil
}

// ListTasks fetches all tasks owned by the authenticated user.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task from the given draft.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (*task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateTaskFromText parses free text server-side and creates the resulting
// task.
func (c *Client) CreateTaskFromText(ctx context.Context, input string) (*task.Task, error) {
	body := map[string]string{"natural_language_input": input}
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/ai", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var found task.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// UpdateTask applies a partial update and returns the stored task.
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// ParseTask parses free text into task fields without creating a task.
func (c *Client) ParseTask(ctx context.Context, input string) (*ParseResult, error) {
	body := map[string]string{"natural_language_input": input}
	var result ParseResult
	if err := c.do(ctx, http.MethodPost, "/ai-tasks/create", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EnhanceTask asks the server for AI-improved fields.
func (c *Client) EnhanceTask(ctx context.Context, draft TaskDraft) (*TaskDraft, error) {
	var enhanced TaskDraft
	if err := c.do(ctx, http.MethodPost, "/ai-tasks/enhance", draft, &enhanced); err != nil {
		return nil, err
	}
	return &enhanced, nil
}

// Suggestions fetches improvement suggestions for a draft.
func (c *Client) Suggestions(ctx context.Context, draft TaskDraft) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodPost, "/ai-tasks/suggestions", draft, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
