package smokecheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Result is one scenario verdict.
type Result struct {
	Name    string
	Passed  bool
	Details []string
	Err     error
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) request(ctx context.Context, method, path, token string, body any) (int, map[string]any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded, nil
}

// RunAll executes every smoke scenario against a running server.
func RunAll(ctx context.Context, baseURL string) []Result {
	c := newClient(baseURL)
	return []Result{
		runScenario("liveness", c.checkLiveness, ctx),
		runScenario("session lifecycle", c.checkSessionLifecycle, ctx),
		runScenario("password reset", c.checkPasswordReset, ctx),
	}
}

func runScenario(name string, fn func(context.Context) ([]string, error), ctx context.Context) Result {
	details, err := fn(ctx)
	return Result{Name: name, Passed: err == nil, Details: details, Err: err}
}

func (c *client) checkLiveness(ctx context.Context) ([]string, error) {
	status, _, err := c.request(ctx, http.MethodGet, "/health/live", "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("liveness returned %d", status)
	}
	return []string{"liveness: ok"}, nil
}

// checkSessionLifecycle walks register -> me -> logout -> me and expects
// the final call to be rejected.
func (c *client) checkSessionLifecycle(ctx context.Context) ([]string, error) {
	email := fmt.Sprintf("smoke-%s@campus.edu", uuid.NewString()[:8])
	var details []string

	status, body, err := c.request(ctx, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Smoke Check", "email": email, "password": "pw123456",
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusCreated {
		return details, fmt.Errorf("register returned %d", status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		return details, fmt.Errorf("register returned no token")
	}
	details = append(details, "register: 201 with token")

	status, body, err = c.request(ctx, http.MethodGet, "/api/v1/auth/me", token, nil)
	if err != nil {
		return details, err
	}
	if status != http.StatusOK {
		return details, fmt.Errorf("me returned %d", status)
	}
	user, _ := body["user"].(map[string]any)
	if user["email"] != email {
		return details, fmt.Errorf("me returned wrong identity: %v", user["email"])
	}
	details = append(details, "me: identity matches")

	status, _, err = c.request(ctx, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if err != nil {
		return details, err
	}
	if status != http.StatusOK {
		return details, fmt.Errorf("logout returned %d", status)
	}
	details = append(details, "logout: 200")

	status, _, err = c.request(ctx, http.MethodGet, "/api/v1/auth/me", token, nil)
	if err != nil {
		return details, err
	}
	if status != http.StatusUnauthorized {
		return details, fmt.Errorf("me after logout returned %d, want 401", status)
	}
	details = append(details, "me after logout: 401")
	return details, nil
}

// checkPasswordReset walks forgot -> reset -> reuse and expects the reuse
// to fail. Requires a non-production server that echoes the reset token.
func (c *client) checkPasswordReset(ctx context.Context) ([]string, error) {
	email := fmt.Sprintf("smoke-%s@campus.edu", uuid.NewString()[:8])
	var details []string

	status, _, err := c.request(ctx, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Smoke Check", "email": email, "password": "pw123456",
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusCreated {
		return details, fmt.Errorf("register returned %d", status)
	}

	status, body, err := c.request(ctx, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusOK {
		return details, fmt.Errorf("forgot-password returned %d", status)
	}
	resetToken, _ := body["resetToken"].(string)
	if resetToken == "" {
		return details, fmt.Errorf("server did not echo a reset token; is it running in production mode?")
	}
	details = append(details, "forgot-password: token issued")

	status, _, err = c.request(ctx, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token": resetToken, "newPassword": "newpw123",
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusOK {
		return details, fmt.Errorf("reset-password returned %d", status)
	}
	details = append(details, "reset-password: 200")

	status, _, err = c.request(ctx, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token": resetToken, "newPassword": "again123",
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusBadRequest {
		return details, fmt.Errorf("reused reset token returned %d, want 400", status)
	}
	details = append(details, "reset token reuse: 400")

	status, _, err = c.request(ctx, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "newpw123",
	})
	if err != nil {
		return details, err
	}
	if status != http.StatusOK {
		return details, fmt.Errorf("login with new password returned %d", status)
	}
	details = append(details, "login with new password: 200")
	return details, nil
}
