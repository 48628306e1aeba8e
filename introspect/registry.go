package introspect

import (
	"fmt"
	"sync"
)

// Registry holds the registered type model: types, their supertypes and
// methods, attached markers, and named marker definitions. It answers the
// three questions the resolution engine asks — supertype enumeration,
// most-specific method lookup, and marker occurrences on an element.
//
// Registration happens once at load time; reads afterwards are concurrent.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*typeEntry
	defs  map[string]Definition
	order []string
}

type typeEntry struct {
	name       string
	supertypes []string
	markers    []Marker
	markerRefs []string
	methods    map[string]*methodEntry
}

type methodEntry struct {
	markers    []Marker
	markerRefs []string
	synthetic  bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*typeEntry),
		defs:  make(map[string]Definition),
	}
}

// DefineMarker registers a named marker definition.
func (r *Registry) DefineMarker(name string, def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("introspect: marker definition %q already registered", name)
	}
	r.defs[name] = def
	return nil
}

// RegisterType registers a type with its supertypes, methods, and markers.
func (r *Registry) RegisterType(name string, spec TypeSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("introspect: type %q already registered", name)
	}

	entry := &typeEntry{
		name:       name,
		supertypes: append([]string(nil), spec.Supertypes...),
		markers:    append([]Marker(nil), spec.Markers...),
		markerRefs: append([]string(nil), spec.MarkerRefs...),
		methods:    make(map[string]*methodEntry, len(spec.Methods)),
	}
	for methodName, m := range spec.Methods {
		entry.methods[methodName] = &methodEntry{
			markers:    append([]Marker(nil), m.Markers...),
			markerRefs: append([]string(nil), m.MarkerRefs...),
			synthetic:  m.Synthetic,
		}
	}
	r.types[name] = entry
	r.order = append(r.order, name)
	return nil
}

// Known reports whether the type name has been registered.
func (r *Registry) Known(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[typeName]
	return ok
}

// Types returns all registered type names in registration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Supertypes returns the full transitive supertype list of typeName,
// depth-first in declaration order, without duplicates and without typeName
// itself. Unregistered supertype names are included but not expanded. The
// result is deterministic for a given registration set.
func (r *Registry) Supertypes(typeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []string
	seen := map[string]bool{typeName: true}
	var walk func(name string)
	walk = func(name string) {
		entry, ok := r.types[name]
		if !ok {
			return
		}
		for _, super := range entry.supertypes {
			if seen[super] {
				continue
			}
			seen[super] = true
			result = append(result, super)
			walk(super)
		}
	}
	walk(typeName)
	return result
}

// Hierarchy returns typeName followed by its transitive supertypes.
func (r *Registry) Hierarchy(typeName string) []string {
	return append([]string{typeName}, r.Supertypes(typeName)...)
}

// DeclaresMethod reports whether typeName itself declares the method
// (supertypes are not consulted).
func (r *Registry) DeclaresMethod(typeName, methodName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[typeName]
	if !ok {
		return false
	}
	_, ok = entry.methods[methodName]
	return ok
}

// IsSynthetic reports whether the method declaration is compiler-generated.
func (r *Registry) IsSynthetic(ref MethodRef) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[ref.Type]
	if !ok {
		return false
	}
	m, ok := entry.methods[ref.Name]
	return ok && m.synthetic
}

// MostSpecificMethod returns the declaration of method that actually executes
// for runtimeType: the first declaration found walking runtimeType and then
// its supertypes. Falls back to method itself when the runtime type's
// hierarchy has no declaration.
func (r *Registry) MostSpecificMethod(method MethodRef, runtimeType string) MethodRef {
	if runtimeType == "" {
		return method
	}
	for _, typeName := range r.Hierarchy(runtimeType) {
		if r.DeclaresMethod(typeName, method.Name) {
			return MethodRef{Type: typeName, Name: method.Name}
		}
	}
	return method
}

// MarkersOnType returns the marker occurrences declared directly on the type,
// including those contributed by attached marker definitions. Source is the
// type name; Root is the contributing definition name, or "" for direct
// declarations.
func (r *Registry) MarkersOnType(typeName string) []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[typeName]
	if !ok {
		return nil
	}
	return r.expand(typeName, entry.markers, entry.markerRefs)
}

// MarkersOnMethod returns the marker occurrences declared directly on the
// method, including those contributed by attached marker definitions.
// Synthetic declarations yield no occurrences.
func (r *Registry) MarkersOnMethod(ref MethodRef) []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.types[ref.Type]
	if !ok {
		return nil
	}
	m, ok := entry.methods[ref.Name]
	if !ok || m.synthetic {
		return nil
	}
	return r.expand(ref.String(), m.markers, m.markerRefs)
}

// expand materializes occurrences for an element: direct markers first, then
// each attached definition's markers tagged with the definition as root.
// Callers hold at least a read lock.
func (r *Registry) expand(source string, direct []Marker, refs []string) []Marker {
	result := make([]Marker, 0, len(direct))
	for _, m := range direct {
		m.Source = source
		m.Root = ""
		result = append(result, m)
	}
	for _, ref := range refs {
		def, ok := r.defs[ref]
		if !ok {
			continue
		}
		for _, m := range def.Markers {
			m.Source = source
			m.Root = ref
			result = append(result, m)
		}
	}
	return result
}
