// Package expr defines the contract between the authorization resolution
// engine and whatever language rule expressions are written in.
//
// The engine only ever sees the Compiler interface — it hands over raw rule
// text once per (method, runtime type) pair and caches the resulting
// Predicate. What grammar the text uses is the compiler's business; the
// Predicate is evaluated later by the interception layer against an
// EvalContext built from the live call.
//
// SimpleCompiler is the built-in implementation covering the common cases
// (permitAll, denyAll, hasRole, hasAnyRole, hasPermission). Projects with a
// richer language plug in their own Compiler.
package expr
