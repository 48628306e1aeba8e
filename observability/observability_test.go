package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordResolution(ctx, "before-call", false, 100*time.Microsecond)
	metrics.RecordResolution(ctx, "before-call", true, 0)
	metrics.RecordError(ctx, "after-call", "AMBIGUOUS_RULE")
}

func TestMetrics_NilSafe(t *testing.T) {
	var metrics *Metrics
	ctx := context.Background()

	metrics.RecordResolution(ctx, "before-call", true, 0)
	metrics.RecordError(ctx, "before-call", "HANDLER_CONFIGURATION")
}

func TestNewInvocationContext(t *testing.T) {
	ic := NewInvocationContext("accounts", "AccountService.Transfer")

	if ic.ID == "" {
		t.Error("expected generated invocation ID")
	}
	if ic.Service != "accounts" {
		t.Errorf("expected Service 'accounts', got %s", ic.Service)
	}
	if ic.Operation != "AccountService.Transfer" {
		t.Errorf("expected Operation 'AccountService.Transfer', got %s", ic.Operation)
	}
	if ic.StartTime.IsZero() {
		t.Error("expected StartTime to be set")
	}
}

func TestNewInvocationContext_UniqueIDs(t *testing.T) {
	a := NewInvocationContext("svc", "op")
	b := NewInvocationContext("svc", "op")
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both were %s", a.ID)
	}
}

func TestInvocationFromContext(t *testing.T) {
	ic := NewInvocationContext("accounts", "AccountService.Transfer")
	ctx := WithInvocationContext(context.Background(), ic)

	retrieved := InvocationFromContext(ctx)
	if retrieved == nil {
		t.Fatal("expected invocation context from context")
	}
	if retrieved.ID != ic.ID {
		t.Errorf("expected ID %s, got %s", ic.ID, retrieved.ID)
	}
}

func TestInvocationFromContext_NotSet(t *testing.T) {
	retrieved := InvocationFromContext(context.Background())
	if retrieved != nil {
		t.Error("expected nil when invocation context not set")
	}
}

func TestInvocationContext_Duration(t *testing.T) {
	ic := NewInvocationContext("svc", "op")
	ic.StartTime = time.Now().Add(-50 * time.Millisecond)

	duration := ic.Duration()
	if duration < 45*time.Millisecond || duration > 200*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", duration)
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("expected non-nil tracer")
	}
}

func TestMeter(t *testing.T) {
	meter := Meter("test-meter")
	if meter == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()
	ctx, span := StartSpan(ctx, "test-operation")
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestSetSpanAttribute_RecordingSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanResolveAttribute)
	SetSpanAttribute(ctx, AttrMethod, "AccountService.Transfer")
	SetSpanAttribute(ctx, AttrCacheHit, false)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Name != SpanResolveAttribute {
		t.Errorf("expected span name %s, got %s", SpanResolveAttribute, spans[0].Name)
	}

	found := false
	for _, attr := range spans[0].Attributes {
		if string(attr.Key) == AttrMethod && attr.Value.AsString() == "AccountService.Transfer" {
			found = true
		}
	}
	if !found {
		t.Error("expected method attribute on span")
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected 1 recorded error event, got %d", len(spans[0].Events))
	}
}

func TestSetSpanAttribute_NoRecordingSpan(t *testing.T) {
	// No span in context: must be a no-op.
	SetSpanAttribute(context.Background(), AttrMethod, "X.Y")
	SetSpanError(context.Background(), errors.New("boom"))
}
