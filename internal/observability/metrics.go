package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/config"
)

type AppMetrics struct {
	authEventCounter     metric.Int64Counter
	tokenCheckCounter    metric.Int64Counter
	repositoryOpCounter  metric.Int64Counter
	contentCacheCounter  metric.Int64Counter
	rateLimitCounter     metric.Int64Counter
	sessionSweepCounter  metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)

	if err := registerAppMetrics(); err != nil {
		return nil, err
	}
	logger.Info("otel metrics enabled", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func registerAppMetrics() error {
	meter := otel.Meter("my-campus-hub")
	m := &AppMetrics{}
	var err error
	if m.authEventCounter, err = meter.Int64Counter("auth.events"); err != nil {
		return fmt.Errorf("create auth.events counter: %w", err)
	}
	if m.tokenCheckCounter, err = meter.Int64Counter("auth.token.validations"); err != nil {
		return fmt.Errorf("create auth.token.validations counter: %w", err)
	}
	if m.repositoryOpCounter, err = meter.Int64Counter("repository.operations"); err != nil {
		return fmt.Errorf("create repository.operations counter: %w", err)
	}
	if m.contentCacheCounter, err = meter.Int64Counter("content.cache.lookups"); err != nil {
		return fmt.Errorf("create content.cache.lookups counter: %w", err)
	}
	if m.rateLimitCounter, err = meter.Int64Counter("ratelimit.decisions"); err != nil {
		return fmt.Errorf("create ratelimit.decisions counter: %w", err)
	}
	if m.sessionSweepCounter, err = meter.Int64Counter("session.sweeps"); err != nil {
		return fmt.Errorf("create session.sweeps counter: %w", err)
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()
	return nil
}

func current() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

// RecordAuthEvent counts register/login/logout/reset outcomes.
func RecordAuthEvent(action, status string) {
	m := current()
	if m == nil {
		return
	}
	m.authEventCounter.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

func RecordTokenValidation(ctx context.Context, outcome string) {
	m := current()
	if m == nil {
		return
	}
	m.tokenCheckCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	m := current()
	if m == nil {
		return
	}
	m.repositoryOpCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordContentCacheLookup(ctx context.Context, namespace, outcome string) {
	m := current()
	if m == nil {
		return
	}
	m.contentCacheCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("namespace", namespace),
		attribute.String("outcome", outcome),
	))
}

func RecordRateLimitDecision(ctx context.Context, scope, decision string) {
	m := current()
	if m == nil {
		return
	}
	m.rateLimitCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("decision", decision),
	))
}

func RecordSessionSweep(ctx context.Context, kind string, affected int64) {
	m := current()
	if m == nil {
		return
	}
	m.sessionSweepCounter.Add(ctx, affected, metric.WithAttributes(attribute.String("kind", kind)))
}
