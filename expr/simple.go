package expr

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/authkit/authz"
	"github.com/skillsenselab/authkit/errors"
)

// SimpleCompiler compiles a small fixed vocabulary of rule expressions:
//
//   - permitAll
//   - denyAll
//   - hasRole('NAME')
//   - hasAnyRole('A', 'B', ...)
//   - hasPermission('resource:action')
//
// Role names are compared against EvalContext.Roles with the configured role
// prefix applied; permissions go through EvalContext.Checker. Anything outside
// this vocabulary is a compile error, which keeps richer expression languages
// pluggable behind the Compiler interface.
type SimpleCompiler struct {
	rolePrefix string
}

// SimpleOption configures a SimpleCompiler.
type SimpleOption func(*SimpleCompiler)

// WithRolePrefix sets the prefix applied to bare role names (default "ROLE_").
func WithRolePrefix(prefix string) SimpleOption {
	return func(c *SimpleCompiler) {
		c.rolePrefix = prefix
	}
}

// NewSimpleCompiler creates a compiler for the built-in expression vocabulary.
func NewSimpleCompiler(opts ...SimpleOption) *SimpleCompiler {
	c := &SimpleCompiler{rolePrefix: authz.DefaultRolePrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile implements Compiler.
func (c *SimpleCompiler) Compile(text string) (Predicate, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.ExpressionCompile(text, fmt.Errorf("expression is empty"))
	}

	switch trimmed {
	case "permitAll":
		return PredicateFunc(func(context.Context, *EvalContext) (bool, error) {
			return true, nil
		}), nil
	case "denyAll":
		return PredicateFunc(func(context.Context, *EvalContext) (bool, error) {
			return false, nil
		}), nil
	}

	name, args, err := parseCall(trimmed)
	if err != nil {
		return nil, errors.ExpressionCompile(text, err)
	}

	prefix := c.rolePrefix
	switch name {
	case "hasRole":
		if len(args) != 1 {
			return nil, errors.ExpressionCompile(text, fmt.Errorf("hasRole takes exactly one argument, got %d", len(args)))
		}
		role := args[0]
		return PredicateFunc(func(_ context.Context, ec *EvalContext) (bool, error) {
			return authz.HasRole(ec.Roles, role, prefix), nil
		}), nil
	case "hasAnyRole":
		if len(args) == 0 {
			return nil, errors.ExpressionCompile(text, fmt.Errorf("hasAnyRole takes at least one argument"))
		}
		roles := args
		return PredicateFunc(func(_ context.Context, ec *EvalContext) (bool, error) {
			return authz.HasAnyRole(ec.Roles, roles, prefix), nil
		}), nil
	case "hasPermission":
		if len(args) != 1 {
			return nil, errors.ExpressionCompile(text, fmt.Errorf("hasPermission takes exactly one argument, got %d", len(args)))
		}
		permission := args[0]
		return PredicateFunc(func(_ context.Context, ec *EvalContext) (bool, error) {
			return ec.HasPermission(permission), nil
		}), nil
	default:
		return nil, errors.ExpressionCompile(text, fmt.Errorf("unknown function %q", name))
	}
}

// parseCall splits "name('a', 'b')" into the function name and its quoted
// string arguments.
func parseCall(s string) (string, []string, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return "", nil, fmt.Errorf("expected a function call, got %q", s)
	}
	if s[len(s)-1] != ')' {
		return "", nil, fmt.Errorf("missing closing parenthesis in %q", s)
	}

	name := strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return name, nil, nil
	}

	parts := strings.Split(inner, ",")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		arg := strings.TrimSpace(part)
		if len(arg) < 2 || arg[0] != '\'' || arg[len(arg)-1] != '\'' {
			return "", nil, fmt.Errorf("argument %q must be a single-quoted string", arg)
		}
		args = append(args, arg[1:len(arg)-1])
	}
	return name, args, nil
}
