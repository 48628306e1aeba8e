package di

import "fmt"

// Resolve resolves a component with type safety, returns error on failure.
//
// Example:
//
//	handler, err := di.Resolve[methodauth.DeniedHandler](c, "audit_handler")
func Resolve[T any](c Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("di: component %s is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// MustResolve resolves a component with type safety, panics on error.
func MustResolve[T any](c Container, key string) T {
	result, err := Resolve[T](c, key)
	if err != nil {
		panic(err.Error())
	}
	return result
}

// TryResolve resolves a component, returns zero value and false if not found
// or of the wrong type. Use this when a dependency is optional.
func TryResolve[T any](c Container, key string) (T, bool) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, false
	}
	result, ok := instance.(T)
	if !ok {
		return zero, false
	}
	return result, true
}
