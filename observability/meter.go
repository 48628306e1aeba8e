package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Version,
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the metric instruments for attribute resolution.
type Metrics struct {
	resolutionTotal    metric.Int64Counter
	resolutionDuration metric.Float64Histogram
	cacheHits          metric.Int64Counter
	cacheMisses        metric.Int64Counter
	errorTotal         metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolutionTotal, err := meter.Int64Counter("authkit.resolution.total",
		metric.WithDescription("Total number of attribute resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authkit.resolution.total counter: %w", err)
	}

	resolutionDuration, err := meter.Float64Histogram("authkit.resolution.duration",
		metric.WithDescription("Duration of uncached attribute resolutions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authkit.resolution.duration histogram: %w", err)
	}

	cacheHits, err := meter.Int64Counter("authkit.cache.hits",
		metric.WithDescription("Attribute resolutions served from cache"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authkit.cache.hits counter: %w", err)
	}

	cacheMisses, err := meter.Int64Counter("authkit.cache.misses",
		metric.WithDescription("Attribute resolutions that ran the hierarchy search"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authkit.cache.misses counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("authkit.resolution.errors",
		metric.WithDescription("Attribute resolutions that surfaced an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating authkit.resolution.errors counter: %w", err)
	}

	return &Metrics{
		resolutionTotal:    resolutionTotal,
		resolutionDuration: resolutionDuration,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
		errorTotal:         errorTotal,
	}, nil
}

// RecordResolution records one resolution call and, for uncached ones, its
// duration.
func (m *Metrics) RecordResolution(ctx context.Context, ruleKind string, cacheHit bool, duration time.Duration) {
	if m == nil {
		return
	}
	kindAttr := metric.WithAttributes(attribute.String(AttrRuleKind, ruleKind))
	m.resolutionTotal.Add(ctx, 1, kindAttr)
	if cacheHit {
		m.cacheHits.Add(ctx, 1, kindAttr)
		return
	}
	m.cacheMisses.Add(ctx, 1, kindAttr)
	m.resolutionDuration.Record(ctx, duration.Seconds(), kindAttr)
}

// RecordError records a failed resolution with its error code.
func (m *Metrics) RecordError(ctx context.Context, ruleKind, code string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRuleKind, ruleKind),
		attribute.String("code", code),
	))
}
