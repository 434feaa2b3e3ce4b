package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client is the CloudVault API client. All file operations require the
// session token; account operations (signup, login, password reset) do not.
type Client struct {
	httpClient     *nethttp.Client
	transferClient *nethttp.Client
	baseURL        string
	token          string
}

// NewClient creates an API client for the given backend origin. The token
// may be empty for unauthenticated account flows.
func NewClient(baseURL, token string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("API base URL is empty")
	}

	// Retries stay off: every failure surfaces once and the user retries
	// by re-running the command. The wrapper still gives us response
	// draining and connection reuse.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient = &nethttp.Client{Timeout: 30 * time.Second}
	// Error statuses must pass through untouched: the body carries the
	// message shown to the user.
	retryClient.CheckRetry = func(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
		return false, err
	}

	// Uploads and temporary-URL downloads stream large bodies, so they get
	// a separate client with no overall timeout. Per-operation deadlines
	// come from the context.
	transferClient := &nethttp.Client{}

	return &Client{
		httpClient:     retryClient.StandardClient(),
		transferClient: transferClient,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		token:          token,
	}, nil
}

// SetToken replaces the session token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// doJSON performs a request with an optional JSON body and returns the
// response. Transport failures come back wrapped in ErrUnreachable.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, authed bool) (*nethttp.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

// serverMessage extracts the backend's error string from a JSON body,
// falling back to the given default when the body carries none.
func serverMessage(data []byte, fallback string) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallback
}

// Signup registers a new account. The backend answers 201 once the
// verification email is sent; any other status is a failure, including a
// plain 200.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	resp, err := c.doJSON(ctx, "POST", "/signup", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == nethttp.StatusCreated {
		return nil
	}
	data, _ := io.ReadAll(resp.Body)
	return &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "signup failed")}
}

// LoginResult is the successful response of POST /login. Name is optional;
// callers fall back to the email's local part when it is absent.
type LoginResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Login exchanges credentials for a session token. Success is the presence
// of a token in the response body.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.doJSON(ctx, "POST", "/login", body, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result LoginResult
	if err := json.Unmarshal(data, &result); err == nil && result.Token != "" {
		return &result, nil
	}
	return nil, &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "login failed")}
}

// ForgotPassword asks the backend to email a reset link. It returns the
// server-supplied confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	resp, err := c.doJSON(ctx, "POST", "/forgot-password", map[string]string{"email": email}, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "request failed")}
	}
	return serverMessage(data, "Reset link sent. Check your inbox."), nil
}

// ResetPassword redeems an emailed reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	resp, err := c.doJSON(ctx, "POST", "/reset-password", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(resp.Body)
	return &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "password reset failed")}
}
