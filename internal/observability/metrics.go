package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kashmiricraft/treasures-api/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"
	"go.opentelemetry.io/otel/sdk/resource"
)

type AppMetrics struct {
	productOpCounter       metric.Int64Counter
	productOpDuration      metric.Float64Histogram
	repoOpCounter          metric.Int64Counter
	imageStoreCounter      metric.Int64Counter
	imageUploadBytes       metric.Float64Histogram
	authLoginCounter       metric.Int64Counter
	authReqDuration        metric.Float64Histogram
	rateLimitCounter       metric.Int64Counter
	middlewareEventCounter metric.Int64Counter
	healthCheckCounter     metric.Int64Counter
	healthCheckDuration    metric.Float64Histogram
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
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "catalog.product.operation.duration"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter("kashmiri-treasures-api")
	productOpCounter, err := meter.Int64Counter("catalog.product.operations")
	if err != nil {
		return nil, err
	}
	productOpDuration, err := meter.Float64Histogram(
		"catalog.product.operation.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of product pipeline operations in seconds"),
	)
	if err != nil {
		return nil, err
	}
	repoOpCounter, err := meter.Int64Counter("repository.operations")
	if err != nil {
		return nil, err
	}
	imageStoreCounter, err := meter.Int64Counter("storage.image.operations")
	if err != nil {
		return nil, err
	}
	imageUploadBytes, err := meter.Float64Histogram(
		"storage.image.upload.bytes",
		metric.WithDescription("Size of stored image uploads in bytes"),
	)
	if err != nil {
		return nil, err
	}
	authLoginCounter, err := meter.Int64Counter("auth.login.attempts")
	if err != nil {
		return nil, err
	}
	authReqDuration, err := meter.Float64Histogram(
		"auth.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of auth endpoint requests in seconds"),
	)
	if err != nil {
		return nil, err
	}
	rateLimitCounter, err := meter.Int64Counter("http.rate_limit.decisions")
	if err != nil {
		return nil, err
	}
	middlewareEventCounter, err := meter.Int64Counter("http.middleware.validation.events")
	if err != nil {
		return nil, err
	}
	healthCheckCounter, err := meter.Int64Counter("health.check.results")
	if err != nil {
		return nil, err
	}
	healthCheckDuration, err := meter.Float64Histogram(
		"health.check.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of health dependency checks in seconds"),
	)
	if err != nil {
		return nil, err
	}

	metricsMu.Lock()
	appMetrics = &AppMetrics{
		productOpCounter:       productOpCounter,
		productOpDuration:      productOpDuration,
		repoOpCounter:          repoOpCounter,
		imageStoreCounter:      imageStoreCounter,
		imageUploadBytes:       imageUploadBytes,
		authLoginCounter:       authLoginCounter,
		authReqDuration:        authReqDuration,
		rateLimitCounter:       rateLimitCounter,
		middlewareEventCounter: middlewareEventCounter,
		healthCheckCounter:     healthCheckCounter,
		healthCheckDuration:    healthCheckDuration,
	}
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

func RecordProductOperation(ctx context.Context, operation, outcome string, duration time.Duration) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.productOpCounter.Add(ctx, 1, attrs)
	m.productOpDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.repoOpCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordImageStoreOperation(ctx context.Context, backend, operation, outcome string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.imageStoreCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordImageUploadBytes(ctx context.Context, backend string, size int64) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.imageUploadBytes.Record(ctx, float64(size), metric.WithAttributes(
		attribute.String("backend", backend),
	))
}

func RecordAuthLogin(ctx context.Context, status string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.authLoginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func RecordAuthRequestDuration(ctx context.Context, endpoint, status string, duration time.Duration) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.authReqDuration.Record(
		ctx,
		duration.Seconds(),
		metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.String("status", status),
		),
	)
}

func RecordRateLimitDecision(ctx context.Context, scope, outcome, mode string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.rateLimitCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
		attribute.String("outcome", outcome),
		attribute.String("mode", mode),
	))
}

func RecordMiddlewareValidationEvent(ctx context.Context, component, outcome string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.middlewareEventCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.healthCheckCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckDuration(ctx context.Context, check string, duration time.Duration) {
	metricsMu.RLock()
	m := appMetrics
	metricsMu.RUnlock()
	if m == nil {
		return
	}
	m.healthCheckDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("check", check),
	))
}
