// Package client provides typed access to the todostack user and todo
// services for interactive tools. The bearer token obtained at login is
// held in the client, never persisted server-side.
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
)

// Client talks to both services over HTTP/JSON.
type Client struct {
	userBase   string
	todoBase   string
	httpClient *http.Client
	token      string
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithToken seeds the client with a previously issued token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New constructs a Client pointing at the two service base URLs.
func New(userBase, todoBase string, opts ...Option) *Client {
	c := &Client{
		userBase:   strings.TrimRight(userBase, "/"),
		todoBase:   strings.TrimRight(todoBase, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently held by the client.
func (c *Client) Token() string {
	return c.token
}

// APIError represents an error response from either service.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.Status)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// User reflects the user-service registration payload.
type User struct {
	UUID  string `json:"uuid"`
	Email string `json:"email"`
}

// Todo reflects todo-service payloads.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerUUID   string    `json:"ownerUuid"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TodoUpdate is a partial update; nil fields are omitted from the request.
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (c *Client) do(ctx context.Context, method, base, path string, body any, authed bool, v any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return APIError{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractMessage(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		return strings.TrimSpace(string(data))
	}
	return payload.Message
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account on the user service.
func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, c.userBase, "/api/users/register", credentials{email, password}, false, &user)
	return user, err
}

// Login authenticates against the user service and retains the issued
// token for subsequent todo-service calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, c.userBase, "/api/users/login", credentials{email, password}, false, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// CreateTodo creates a todo owned by the logged-in user.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (Todo, error) {
	payload := map[string]string{"title": title, "description": description}
	var todo Todo
	err := c.do(ctx, http.MethodPost, c.todoBase, "/api/todos", payload, true, &todo)
	return todo, err
}

// ListTodos returns the logged-in user's todos, newest first.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	err := c.do(ctx, http.MethodGet, c.todoBase, "/api/todos", nil, true, &todos)
	return todos, err
}

// UpdateTodo applies a partial update to one of the user's todos.
func (c *Client) UpdateTodo(ctx context.Context, id int64, update TodoUpdate) (Todo, error) {
	var todo Todo
	err := c.do(ctx, http.MethodPatch, c.todoBase, fmt.Sprintf("/api/todos/%d", id), update, true, &todo)
	return todo, err
}

// DeleteTodo removes one of the user's todos.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.todoBase, fmt.Sprintf("/api/todos/%d", id), nil, true, nil)
}
