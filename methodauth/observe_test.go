package methodauth

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/introspect"
	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/observability"
)

func TestObservedResolver_DelegatesResolution(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("creating metrics: %v", err)
	}
	resolver := NewResolver(accountRegistry(t), WithLogger(logger.Nop()))
	observed := NewObservedResolver(resolver, metrics)
	ctx := context.Background()
	method := introspect.MethodRef{Type: "AccountService", Name: "Transfer"}

	first, err := observed.ResolveBeforeCall(ctx, method, "AccountServiceImpl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.HasRule() {
		t.Fatal("expected a rule")
	}

	// Second call is a cache hit and must yield the same instance.
	second, err := observed.ResolveBeforeCall(ctx, method, "AccountServiceImpl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the identical Attribute instance through the wrapper")
	}

	if attr, err := observed.ResolveAfterCall(ctx, method, "AccountServiceImpl"); err != nil || attr.HasRule() {
		t.Errorf("expected NoRule after-call attribute, got %v, %v", attr, err)
	}
	if attr, err := observed.ResolveResultFilter(ctx, method, "AccountServiceImpl"); err != nil || attr.HasRule() {
		t.Errorf("expected NoRule result-filter attribute, got %v, %v", attr, err)
	}
}

func TestObservedResolver_NilMetrics(t *testing.T) {
	resolver := NewResolver(accountRegistry(t), WithLogger(logger.Nop()))
	observed := NewObservedResolver(resolver, nil)

	attr, err := observed.ResolveBeforeCall(context.Background(),
		introspect.MethodRef{Type: "AccountService", Name: "Transfer"}, "AccountServiceImpl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !attr.HasRule() {
		t.Error("expected a rule")
	}
}

func TestObservedResolver_ErrorPropagates(t *testing.T) {
	reg := introspect.NewRegistry()
	mustRegister(t, reg, "A", introspect.TypeSpec{
		Methods: map[string]introspect.MethodSpec{
			"Get": {Markers: []introspect.Marker{beforeCall("hasRole('A')")}},
		},
	})
	mustRegister(t, reg, "B", introspect.TypeSpec{
		Methods: map[string]introspect.MethodSpec{
			"Get": {Markers: []introspect.Marker{beforeCall("hasRole('B')")}},
		},
	})
	mustRegister(t, reg, "C", introspect.TypeSpec{
		Supertypes: []string{"A", "B"},
		Methods:    map[string]introspect.MethodSpec{"Get": {}},
	})
	observed := NewObservedResolver(NewResolver(reg, WithLogger(logger.Nop())), nil)

	ic := observability.NewInvocationContext("accounts", "C.Get")
	ctx := observability.WithInvocationContext(context.Background(), ic)

	_, err := observed.ResolveBeforeCall(ctx, introspect.MethodRef{Type: "C", Name: "Get"}, "C")
	if !errors.IsAmbiguousRule(err) {
		t.Fatalf("expected AMBIGUOUS_RULE through the wrapper, got %v", err)
	}
}
