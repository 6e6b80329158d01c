package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/config"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/database"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/health"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/handler"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/middleware"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/http/router"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/repository"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/security"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/service"
)

// tokenIssuer is baked into every signed token; a token from another
// issuer never validates here.
const tokenIssuer = "my-campus-hub"

// Build wires the full application: storage, cache, services, HTTP
// surface and scheduled maintenance.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, loggerProvider *sdklog.LoggerProvider) (*App, error) {
	runtime, err := observability.InitRuntime(ctx, cfg, logger, loggerProvider)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var redisClient *redis.Client
	var contentCache service.ContentCacheStore = service.NewInMemoryContentCacheStore()
	var limiterBackend middleware.Limiter = middleware.NewLocalFixedWindowLimiter()
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable at startup, continuing", "addr", cfg.RedisAddr, "error", err)
		}
		contentCache = service.NewRedisContentCacheStore(redisClient, "content_cache")
		limiterBackend = middleware.NewRedisFixedWindowLimiter(redisClient, "rate_limit")
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	academicsRepo := repository.NewAcademicsRepository(db)
	campusRepo := repository.NewCampusRepository(db)

	jwtMgr := security.NewJWTManager(tokenIssuer, cfg.JWTSecret)
	authSvc := service.NewAuthService(userRepo, sessionRepo, jwtMgr, cfg.BcryptCost, cfg.TokenTTL, cfg.ResetTokenTTL)
	academicsSvc := service.NewAcademicsService(academicsRepo, contentCache, cfg.ContentCacheTTL)
	campusSvc := service.NewCampusService(campusRepo, contentCache, cfg.ContentCacheTTL)

	readiness := health.NewProbeRunner(cfg.ReadinessInterval, cfg.ReadinessStaleness)
	readiness.Register(health.NewDatabaseChecker(db))
	if redisClient != nil {
		readiness.Register(health.NewRedisChecker(redisClient))
	}

	maintenance, err := NewSessionMaintenance(cfg, sessionRepo, userRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("schedule session maintenance: %w", err)
	}
	maintenance.Start()

	h := router.NewRouter(router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authSvc, !cfg.IsProduction()),
		AcademicsHandler:   handler.NewAcademicsHandler(academicsSvc),
		CampusHandler:      handler.NewCampusHandler(campusSvc),
		Authenticator:      authSvc,
		CORSOrigins:        cfg.CORSOrigins,
		APIRateLimitRPM:    cfg.APIRateLimitRPM,
		AuthRateLimitRPM:   cfg.AuthRateLimitRPM,
		ForgotRateLimitRPM: cfg.ForgotRateLimitRPM,
		RateLimitBackend:   limiterBackend,
		Readiness:          readiness,
		EnableOTelHTTP:     cfg.OTELTracingEnabled,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := func() {
		maintenance.Stop()
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}

	return New(cfg, logger, server, runtime, readiness, stop), nil
}
