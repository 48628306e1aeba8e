package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvocationContext identifies one guarded invocation for correlation across
// the interception layer, the resolution engine, and telemetry backends. The
// interception layer creates one per call and threads it through the context.
type InvocationContext struct {
	// ID is a unique invocation identifier.
	ID string
	// Service is the owning service name.
	Service string
	// Operation is the guarded operation, e.g. "AccountService.Transfer".
	Operation string
	// StartTime is when the invocation began.
	StartTime time.Time
}

// NewInvocationContext creates an InvocationContext with a generated ID.
func NewInvocationContext(service, operation string) *InvocationContext {
	return &InvocationContext{
		ID:        uuid.NewString(),
		Service:   service,
		Operation: operation,
		StartTime: time.Now(),
	}
}

// Duration returns the elapsed time since the invocation started.
func (ic *InvocationContext) Duration() time.Duration {
	return time.Since(ic.StartTime)
}

// invocationContextKey is the context key for InvocationContext.
type invocationContextKey struct{}

// WithInvocationContext stores an InvocationContext in the context.
func WithInvocationContext(ctx context.Context, ic *InvocationContext) context.Context {
	return context.WithValue(ctx, invocationContextKey{}, ic)
}

// InvocationFromContext retrieves the InvocationContext from context, or nil.
func InvocationFromContext(ctx context.Context) *InvocationContext {
	if ic, ok := ctx.Value(invocationContextKey{}).(*InvocationContext); ok {
		return ic
	}
	return nil
}
