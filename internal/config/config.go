package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string

	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	BcryptCost    int

	CORSOrigins        []string
	APIRateLimitRPM    int
	AuthRateLimitRPM   int
	ForgotRateLimitRPM int

	ContentCacheTTL time.Duration

	SessionSweepSpec   string
	SessionPurgeSpec   string
	SessionPurgeAfter  time.Duration
	ReadinessInterval  time.Duration
	ReadinessStaleness time.Duration
	ShutdownTimeout    time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELMetricsExportInterval time.Duration
}

// Load reads configuration from the environment, with an optional .env file
// layered underneath (existing variables always win).
func Load() (*Config, error) {
	if path := getEnv("ENV_FILE", ".env"); path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL: getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 12),

		CORSOrigins:        splitAndTrim(getEnv("CORS_ORIGINS", "*")),
		APIRateLimitRPM:    getEnvInt("API_RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:   getEnvInt("AUTH_RATE_LIMIT_RPM", 30),
		ForgotRateLimitRPM: getEnvInt("FORGOT_RATE_LIMIT_RPM", 5),

		ContentCacheTTL: getEnvDuration("CONTENT_CACHE_TTL", 5*time.Minute),

		SessionSweepSpec:   getEnv("SESSION_SWEEP_SPEC", "@hourly"),
		SessionPurgeSpec:   getEnv("SESSION_PURGE_SPEC", "@daily"),
		SessionPurgeAfter:  getEnvDuration("SESSION_PURGE_AFTER", 30*24*time.Hour),
		ReadinessInterval:  getEnvDuration("READINESS_INTERVAL", 10*time.Second),
		ReadinessStaleness: getEnvDuration("READINESS_STALENESS", 30*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		OTELServiceName:           getEnv("OTEL_SERVICE_NAME", "my-campus-hub"),
		OTELEnvironment:           getEnv("OTEL_ENVIRONMENT", getEnv("ENV", "development")),
		OTELExporterOTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure:  getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELMetricsEnabled:        getEnvBool("OTEL_METRICS_ENABLED", false),
		OTELTracingEnabled:        getEnvBool("OTEL_TRACING_ENABLED", false),
		OTELLogsEnabled:           getEnvBool("OTEL_LOGS_ENABLED", false),
		OTELMetricsExportInterval: getEnvDuration("OTEL_METRICS_EXPORT_INTERVAL", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		recordConfigValidationEvent(context.Background(), cfg.Environment, "failure", classifyConfigError(err))
		return nil, fmt.Errorf("validate config: %w", err)
	}
	recordConfigValidationEvent(context.Background(), cfg.Environment, "success", "none")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.BcryptCost < 10 || c.BcryptCost > 20 {
		return fmt.Errorf("BCRYPT_COST must be between 10 and 20, got %d", c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction gates the weaker non-production behaviors, such as echoing
// the password-reset token in the forgot-password response.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
