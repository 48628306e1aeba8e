// Package methodauth resolves method-level authorization attributes.
//
// Given a registered type model (package introspect), a Resolver answers the
// question "which authorization rule governs method M when invoked on runtime
// type T?" for three rule kinds: before-call, after-call, and result-filter.
// Resolution searches the full supertype hierarchy of the most specific
// declaration, meta-markers included, and fails loudly with AMBIGUOUS_RULE
// when two distinct declarations survive, rather than silently picking one.
//
// Each (method, runtime type, kind) triple is resolved at most once per
// resolver; concurrent first uses serialize and all observe the same
// Attribute instance. Failed resolutions are retried on the next call unless
// failure caching is enabled.
//
// Basic use:
//
//	types := introspect.NewRegistry()
//	// ... RegisterType calls at startup ...
//	resolver := methodauth.NewResolver(types)
//
//	attr, err := resolver.ResolveBeforeCall(ctx,
//		introspect.MethodRef{Type: "AccountService", Name: "Transfer"},
//		"AccountServiceImpl")
//	if err != nil {
//		return err
//	}
//	if attr.HasRule() {
//		ok, err := attr.Predicate().Evaluate(ctx, evalCtx)
//		...
//	}
//
// Before-call and after-call attributes carry a DeniedHandler resolved from
// the component container (package di); without a designation the built-in
// ThrowingDeniedHandler applies. Wrap the resolver in an ObservedResolver to
// get spans and metrics per resolution.
package methodauth
