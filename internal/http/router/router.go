package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/health"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/handler"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/middleware"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/response"
)

type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	AcademicsHandler   *handler.AcademicsHandler
	CampusHandler      *handler.CampusHandler
	Authenticator      middleware.Authenticator
	CORSOrigins        []string
	APIRateLimitRPM    int
	AuthRateLimitRPM   int
	ForgotRateLimitRPM int
	RateLimitBackend   middleware.Limiter
	Readiness          *health.ProbeRunner
	EnableOTelHTTP     bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	backend := dep.RateLimitBackend
	if backend == nil {
		backend = middleware.NewLocalFixedWindowLimiter()
	}
	// The wide API window fails open; credential endpoints fail closed.
	r.Use(middleware.NewRateLimiter(backend, dep.APIRateLimitRPM, time.Minute, middleware.FailOpen, "api").Middleware())
	authLimiter := middleware.NewRateLimiter(backend, dep.AuthRateLimitRPM, time.Minute, middleware.FailClosed, "auth").Middleware()
	forgotLimiter := middleware.NewRateLimiter(backend, dep.ForgotRateLimitRPM, time.Minute, middleware.FailClosed, "forgot").Middleware()

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, checks := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": checks})
			return
		}
		response.JSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unready", "checks": checks})
	})

	requireAuth := middleware.AuthMiddleware(dep.Authenticator)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter).Post("/register", dep.AuthHandler.Register)
			r.With(authLimiter).Post("/login", dep.AuthHandler.Login)
			r.With(forgotLimiter).Post("/forgot-password", dep.AuthHandler.ForgotPassword)
			r.With(authLimiter).Post("/reset-password", dep.AuthHandler.ResetPassword)

			// Logout validates the bearer token itself: a revoked or
			// expired token must still be able to log out.
			r.Post("/logout", dep.AuthHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", dep.AuthHandler.Me)
				r.Put("/profile", dep.AuthHandler.UpdateProfile)
				r.Post("/logout-all", dep.AuthHandler.LogoutAll)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/academics", func(r chi.Router) {
				r.Get("/semesters", dep.AcademicsHandler.Semesters)
				r.Get("/semesters/{id}", dep.AcademicsHandler.Semester)
				r.Get("/semesters/{id}/subjects", dep.AcademicsHandler.SemesterSubjects)
				r.Get("/teachers", dep.AcademicsHandler.Teachers)
				r.Get("/teachers/{id}", dep.AcademicsHandler.Teacher)
			})

			r.Route("/campus", func(r chi.Router) {
				r.Get("/events", dep.CampusHandler.Events)
				r.Get("/mess", dep.CampusHandler.MessMenu)
				r.Get("/hostels", dep.CampusHandler.Hostels)
				r.Get("/college", dep.CampusHandler.College)
			})
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
