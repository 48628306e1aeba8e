// Package observability provides OpenTelemetry tracing and metrics
// integration for the resolution engine.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//
// The methodauth package's ObservedResolver wires these instruments to
// resolution calls: a span per uncached resolution, hit/miss counters, and a
// duration histogram. InvocationContext correlates resolution telemetry with
// the guarded call that triggered it.
package observability
