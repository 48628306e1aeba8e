package di

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// RegistrationMode determines how a component is produced.
type RegistrationMode int

const (
	Lazy      RegistrationMode = iota // constructed on first resolve
	Singleton                         // pre-created instance
)

// Container is a keyed registry of component instances and constructors.
// It backs denial handler lookup in the resolution engine, but carries no
// authorization semantics itself.
type Container interface {
	Register(key string, constructor any) error
	RegisterSingleton(key string, instance any) error
	Resolve(key string) (any, error)
	// KeysForType returns the sorted keys of every registration that produces
	// an instance of the named type (reflect.Type.String() of the concrete
	// type, e.g. "*audit.DenyLogger"). Lazy registrations are inspected via
	// their constructor signature, without being constructed.
	KeysForType(typeName string) []string
	Registrations() []RegistrationInfo
	Close() error
}

// RegistrationInfo describes a registered component for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	TypeName    string
	Initialized bool
}

// registry is the default Container implementation.
type registry struct {
	mu         sync.RWMutex
	components map[string]*registration
}

type registration struct {
	key         string
	mode        RegistrationMode
	constructor reflect.Value // Lazy only
	produces    reflect.Type

	initMu      sync.Mutex
	initialized bool
	instance    any
}

// NewContainer creates an empty Container.
func NewContainer() Container {
	return &registry{components: make(map[string]*registration)}
}

// Register adds a lazily-constructed component. The constructor must be a
// function returning (T) or (T, error) and taking no arguments.
func (c *registry) Register(key string, constructor any) error {
	fn := reflect.ValueOf(constructor)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("di: constructor for %q must be a function, got %T", key, constructor)
	}
	fnType := fn.Type()
	if fnType.NumIn() != 0 {
		return fmt.Errorf("di: constructor for %q must take no arguments", key)
	}
	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			return fmt.Errorf("di: constructor for %q must return (T) or (T, error)", key)
		}
	default:
		return fmt.Errorf("di: constructor for %q must return (T) or (T, error)", key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[key]; exists {
		return fmt.Errorf("di: component %q already registered", key)
	}
	c.components[key] = &registration{
		key:         key,
		mode:        Lazy,
		constructor: fn,
		produces:    fnType.Out(0),
	}
	return nil
}

// RegisterSingleton adds a pre-created instance.
func (c *registry) RegisterSingleton(key string, instance any) error {
	if instance == nil {
		return fmt.Errorf("di: singleton %q must not be nil", key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[key]; exists {
		return fmt.Errorf("di: component %q already registered", key)
	}
	c.components[key] = &registration{
		key:         key,
		mode:        Singleton,
		produces:    reflect.TypeOf(instance),
		initialized: true,
		instance:    instance,
	}
	return nil
}

// Resolve returns the instance registered under key, constructing it on first
// use for lazy registrations. Concurrent first resolves of the same key
// construct at most once; construction failures are not memoized.
func (c *registry) Resolve(key string) (any, error) {
	c.mu.RLock()
	reg, exists := c.components[key]
	c.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("di: component not registered: %s", key)
	}
	return reg.resolve()
}

func (r *registration) resolve() (any, error) {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if r.initialized {
		return r.instance, nil
	}

	results := r.constructor.Call(nil)
	if len(results) == 2 {
		if errVal := results[1].Interface(); errVal != nil {
			return nil, fmt.Errorf("di: constructing %q: %w", r.key, errVal.(error))
		}
	}
	r.instance = results[0].Interface()
	r.initialized = true
	return r.instance, nil
}

// KeysForType implements Container.
func (c *registry) KeysForType(typeName string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	for key, reg := range c.components {
		if reg.produces != nil && reg.produces.String() == typeName {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Registrations returns info about all registered components for introspection.
func (c *registry) Registrations() []RegistrationInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.components))
	for key, reg := range c.components {
		reg.initMu.Lock()
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        reg.mode,
			TypeName:    reg.produces.String(),
			Initialized: reg.initialized,
		})
		reg.initMu.Unlock()
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// Close closes all initialized components that implement io.Closer's shape.
func (c *registry) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, reg := range c.components {
		reg.initMu.Lock()
		if reg.initialized && reg.instance != nil {
			if closer, ok := reg.instance.(interface{ Close() error }); ok {
				closer.Close()
			}
		}
		reg.initMu.Unlock()
	}
	return nil
}

// TypeName returns the reflect type name of v as used by KeysForType.
func TypeName(v any) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}
