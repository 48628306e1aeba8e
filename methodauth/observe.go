package methodauth

import (
	"context"
	"time"

	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/introspect"
	"github.com/skillsenselab/authkit/observability"
)

// ObservedResolver wraps a Resolver with tracing and metrics. Every call
// produces a span named observability.SpanResolveAttribute; uncached
// resolutions additionally record their duration. Cached hits stay cheap, so
// wrapping the resolver is safe on hot paths.
type ObservedResolver struct {
	resolver *Resolver
	metrics  *observability.Metrics
}

// NewObservedResolver wraps the resolver. A nil metrics disables metric
// recording but keeps tracing.
func NewObservedResolver(r *Resolver, metrics *observability.Metrics) *ObservedResolver {
	return &ObservedResolver{resolver: r, metrics: metrics}
}

// ResolveBeforeCall resolves the before-call attribute with telemetry.
func (o *ObservedResolver) ResolveBeforeCall(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	return o.observe(ctx, o.resolver.before, method, runtimeType)
}

// ResolveAfterCall resolves the after-call attribute with telemetry.
func (o *ObservedResolver) ResolveAfterCall(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	return o.observe(ctx, o.resolver.after, method, runtimeType)
}

// ResolveResultFilter resolves the result-filter attribute with telemetry.
func (o *ObservedResolver) ResolveResultFilter(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	return o.observe(ctx, o.resolver.filter, method, runtimeType)
}

func (o *ObservedResolver) observe(ctx context.Context, reg *ruleRegistry, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanResolveAttribute)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrMethod, method.String())
	observability.SetSpanAttribute(ctx, observability.AttrRuntimeType, runtimeType)
	observability.SetSpanAttribute(ctx, observability.AttrRuleKind, reg.ruleKind.String())
	if ic := observability.InvocationFromContext(ctx); ic != nil {
		observability.SetSpanAttribute(ctx, observability.AttrInvocationID, ic.ID)
	}

	start := time.Now()
	attr, computed, err := reg.attribute(method, runtimeType)
	duration := time.Since(start)

	observability.SetSpanAttribute(ctx, observability.AttrCacheHit, !computed)
	if err != nil {
		observability.SetSpanAttribute(ctx, observability.AttrStatus, "error")
		observability.SetSpanError(ctx, err)
		code, _ := errors.CodeOf(err)
		o.metrics.RecordError(ctx, reg.ruleKind.String(), string(code))
		return nil, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrStatus, "ok")
	o.metrics.RecordResolution(ctx, reg.ruleKind.String(), !computed, duration)
	return attr, nil
}
