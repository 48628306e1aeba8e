package methodauth

import (
	"context"

	"github.com/skillsenselab/authkit/di"
	"github.com/skillsenselab/authkit/expr"
	"github.com/skillsenselab/authkit/introspect"
	"github.com/skillsenselab/authkit/logger"
)

// Resolver is the engine's entry point: it resolves the before-call,
// after-call, and result-filter attribute for any (method, runtime type)
// pair, each at most once. Construct one per process at startup and share it;
// all methods are safe for concurrent use.
type Resolver struct {
	before *ruleRegistry
	after  *ruleRegistry
	filter *ruleRegistry
}

type resolverOptions struct {
	compiler       expr.Compiler
	container      di.Container
	defaultHandler DeniedHandler
	cacheFailures  bool
	log            *logger.Logger
}

// Option configures a Resolver.
type Option func(*resolverOptions)

// WithCompiler sets the expression compiler. Defaults to expr.NewSimpleCompiler().
func WithCompiler(c expr.Compiler) Option {
	return func(o *resolverOptions) { o.compiler = c }
}

// WithContainer sets the component container used to look up custom denial
// handler instances. Without one, any custom handler designation fails with a
// HANDLER_CONFIGURATION error.
func WithContainer(c di.Container) Option {
	return func(o *resolverOptions) { o.container = c }
}

// WithDefaultHandler replaces the built-in ThrowingDeniedHandler as the
// handler used when no designation is present.
func WithDefaultHandler(h DeniedHandler) Option {
	return func(o *resolverOptions) { o.defaultHandler = h }
}

// WithFailureCaching memoizes failed resolutions instead of retrying them on
// every call. Only enable this when rule configuration is immutable after
// startup.
func WithFailureCaching(enabled bool) Option {
	return func(o *resolverOptions) { o.cacheFailures = enabled }
}

// WithLogger sets the logger. Defaults to the global logger tagged with the
// methodauth component.
func WithLogger(l *logger.Logger) Option {
	return func(o *resolverOptions) { o.log = l }
}

// NewResolver creates a Resolver over the registered type model.
func NewResolver(types *introspect.Registry, opts ...Option) *Resolver {
	o := &resolverOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.compiler == nil {
		o.compiler = expr.NewSimpleCompiler()
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger().WithComponent("methodauth")
	}

	handlers := newHandlerResolver(o.container, o.defaultHandler)
	return &Resolver{
		before: newRuleRegistry(introspect.KindBeforeCall, KindBeforeCall, types, o.compiler, handlers, o.cacheFailures, o.log),
		after:  newRuleRegistry(introspect.KindAfterCall, KindAfterCall, types, o.compiler, handlers, o.cacheFailures, o.log),
		filter: newRuleRegistry(introspect.KindResultFilter, KindResultFilter, types, o.compiler, nil, o.cacheFailures, o.log),
	}
}

// ResolveBeforeCall returns the before-call attribute for the method as
// invoked on runtimeType. The result is NoRule when nothing applies.
// AMBIGUOUS_RULE, EXPRESSION_COMPILE, and HANDLER_CONFIGURATION errors
// surface to the caller and, unless failure caching is enabled, the next call
// re-runs the resolution.
func (r *Resolver) ResolveBeforeCall(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	attr, _, err := r.before.attribute(method, runtimeType)
	return attr, err
}

// ResolveAfterCall returns the after-call attribute for the method as invoked
// on runtimeType.
func (r *Resolver) ResolveAfterCall(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	attr, _, err := r.after.attribute(method, runtimeType)
	return attr, err
}

// ResolveResultFilter returns the result-filter attribute for the method as
// invoked on runtimeType. Result-filter attributes never carry a denial
// handler.
func (r *Resolver) ResolveResultFilter(ctx context.Context, method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	attr, _, err := r.filter.attribute(method, runtimeType)
	return attr, err
}
