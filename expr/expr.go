package expr

import (
	"context"

	"github.com/skillsenselab/authkit/authz"
)

// EvalContext carries the call-time state a predicate is evaluated against.
// The interception layer builds one per guarded invocation; the resolution
// engine never constructs or inspects it.
type EvalContext struct {
	// Subject identifies the caller (user ID, service account, role name).
	Subject string
	// Roles are the roles granted to the subject.
	Roles []string
	// Checker answers permission checks for the subject. Nil means deny all.
	Checker authz.Checker
	// Args are the arguments of the guarded call, in declaration order.
	Args []any
	// ReturnValue is the guarded call's return value (after-call rules only).
	ReturnValue any
	// FilterTarget is the element currently under test (result-filter rules only).
	FilterTarget any
}

// HasPermission checks a permission for the context's subject.
func (ec *EvalContext) HasPermission(permission string) bool {
	if ec.Checker == nil {
		return false
	}
	return ec.Checker.HasPermission(ec.Subject, permission)
}

// Predicate is a compiled authorization expression.
type Predicate interface {
	Evaluate(ctx context.Context, ec *EvalContext) (bool, error)
}

// PredicateFunc is an adapter to use ordinary functions as Predicate.
type PredicateFunc func(ctx context.Context, ec *EvalContext) (bool, error)

// Evaluate implements Predicate.
func (f PredicateFunc) Evaluate(ctx context.Context, ec *EvalContext) (bool, error) {
	return f(ctx, ec)
}

// Compiler turns rule text into an evaluable Predicate. Implementations
// return an EXPRESSION_COMPILE error for malformed input.
type Compiler interface {
	Compile(text string) (Predicate, error)
}

// CompilerFunc is an adapter to use ordinary functions as Compiler.
type CompilerFunc func(text string) (Predicate, error)

// Compile implements Compiler.
func (f CompilerFunc) Compile(text string) (Predicate, error) {
	return f(text)
}
