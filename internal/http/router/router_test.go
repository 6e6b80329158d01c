package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/middleware"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

type stubAuthenticator struct {
	user *domain.User
	err  error
}

func (s *stubAuthenticator) Authenticate(string) (*domain.User, error) {
	return s.user, s.err
}

func newRouterTestDeps() Dependencies {
	return Dependencies{
		Authenticator:      &stubAuthenticator{err: service.ErrInvalidToken},
		CORSOrigins:        []string{"http://localhost"},
		APIRateLimitRPM:    1000,
		AuthRateLimitRPM:   1000,
		ForgotRateLimitRPM: 1000,
		EnableOTelHTTP:     false,
	}
}

func perform(r http.Handler, method, target string, headers map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "10.10.10.10:1234"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthLive(t *testing.T) {
	r := NewRouter(newRouterTestDeps())

	rr := perform(r, http.MethodGet, "/health/live", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestRouterHealthReadyWithoutRunner(t *testing.T) {
	dep := newRouterTestDeps()
	dep.Readiness = nil
	r := NewRouter(dep)

	rr := perform(r, http.MethodGet, "/health/ready", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ready"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := NewRouter(newRouterTestDeps())

	protected := []string{
		"/api/v1/auth/me",
		"/api/v1/academics/semesters",
		"/api/v1/academics/teachers",
		"/api/v1/campus/events",
		"/api/v1/campus/college",
	}
	for _, path := range protected {
		rr := perform(r, http.MethodGet, path, nil, "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, rr.Code)
		}
	}
}

func TestProtectedRouteRejectsBadToken(t *testing.T) {
	r := NewRouter(newRouterTestDeps())

	rr := perform(r, http.MethodGet, "/api/v1/auth/me", map[string]string{
		"Authorization": "Bearer junk",
	}, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid or expired token") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestAuthRateLimitClosesOnBackendError(t *testing.T) {
	dep := newRouterTestDeps()
	dep.RateLimitBackend = failingLimiter{}
	r := NewRouter(dep)

	// Wide API scope fails open so reads keep flowing.
	rr := perform(r, http.MethodGet, "/health/live", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("api scope should fail open, got %d", rr.Code)
	}

	// Credential endpoints fail closed.
	rr = perform(r, http.MethodPost, "/api/v1/auth/login", nil, `{"email":"a@b.c","password":"x"}`)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("auth scope should fail closed, got %d", rr.Code)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(_ context.Context, _ string, _ int, _ time.Duration) (middleware.Decision, error) {
	return middleware.Decision{}, errors.New("backend down")
}
