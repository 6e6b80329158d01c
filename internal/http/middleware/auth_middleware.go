package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/domain"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves a bearer token to its owning user.
type Authenticator interface {
	Authenticate(token string) (*domain.User, error)
}

// AuthMiddleware gates protected routes. A missing token gets its own
// message; every validation failure collapses into one generic 401 so the
// response never reveals whether a token was malformed, revoked or expired.
// The precise reason is logged and counted internally.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				observability.RecordTokenValidation(r.Context(), "missing")
				response.Error(w, http.StatusUnauthorized, "access token required")
				return
			}

			user, err := auth.Authenticate(token)
			if err != nil {
				outcome := tokenFailureOutcome(err)
				observability.RecordTokenValidation(r.Context(), outcome)
				slog.InfoContext(r.Context(), "token rejected", "reason", outcome, "path", r.URL.Path)
				response.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			observability.RecordTokenValidation(r.Context(), "valid")
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok
}

func tokenFailureOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		return "invalid"
	case errors.Is(err, service.ErrSessionInactive):
		return "inactive"
	case errors.Is(err, service.ErrSessionExpired):
		return "expired"
	case errors.Is(err, service.ErrUserNotFound):
		return "user_gone"
	case errors.Is(err, service.ErrMissingToken):
		return "missing"
	default:
		return "error"
	}
}
