// Package errors provides the unified error type and error codes used across
// authkit.
//
// Every surfaced failure is an *AppError carrying a machine-readable ErrorCode.
// The authorization resolution codes form a closed taxonomy:
//
//   - AMBIGUOUS_RULE: conflicting rule declarations for one method/type pair
//   - EXPRESSION_COMPILE: a rule expression failed to compile
//   - HANDLER_CONFIGURATION: a denial handler resolved to zero or multiple instances
//   - ACCESS_DENIED: a rule evaluated to denied
//
// Callers classify errors with the Is* predicates rather than string matching:
//
//	attr, err := resolver.ResolveBeforeCall(ctx, method, runtimeType)
//	if errors.IsAmbiguousRule(err) {
//	    // configuration bug: fail the deployment, not the request
//	}
package errors
