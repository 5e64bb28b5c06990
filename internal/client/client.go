// Package client talks to a taskflow API over HTTP. It implements both
// auth.Service and resources.Service so it can replace the mock backends.
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

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

// Client represents an HTTP client for the taskflow API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     storage.Store
}

// New creates a new API client. tokens may be nil, in which case requests
// are sent without an Authorization header.
func New(baseURL string, tokens storage.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	Action     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed (status %d): %s", e.Action, e.StatusCode, e.Body)
}

// do sends body as JSON and decodes the response into out (when non-nil)
func (c *Client) do(ctx context.Context, action, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, ok, err := c.tokens.GetItem(storage.AuthTokenKey)
		if err != nil {
			return err
		}
		if ok && token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{Action: action, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Login authenticates the user and returns a token
func (c *Client) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account and returns a token
func (c *Client) Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "signup", http.MethodPost, "/api/auth/signup", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ForgotPassword(ctx context.Context, in models.ForgotPasswordInput) error {
	return c.do(ctx, "forgot password", http.MethodPost, "/api/auth/forgot-password", in, nil)
}

func (c *Client) ResetPassword(ctx context.Context, in models.ResetPasswordInput) error {
	return c.do(ctx, "reset password", http.MethodPost, "/api/auth/reset-password", in, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, in models.VerifyEmailInput) error {
	return c.do(ctx, "verify email", http.MethodPost, "/api/auth/verify-email", in, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/api/auth/logout", nil, nil)
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, in models.CreateProjectInput) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, "create project", http.MethodPost, "/api/projects", in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateWorkspace creates a new workspace
func (c *Client) CreateWorkspace(ctx context.Context, in models.CreateWorkspaceInput) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := c.do(ctx, "create workspace", http.MethodPost, "/api/workspaces", in, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// CreateTask creates a new task
func (c *Client) CreateTask(ctx context.Context, in models.CreateTaskInput) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/api/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
