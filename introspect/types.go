package introspect

// Kind names a marker category understood by the resolution engine.
type Kind string

const (
	// KindBeforeCall marks a rule evaluated before the guarded call runs.
	KindBeforeCall Kind = "before-call"
	// KindAfterCall marks a rule evaluated against the completed call.
	KindAfterCall Kind = "after-call"
	// KindResultFilter marks a rule filtering elements of the return value.
	KindResultFilter Kind = "result-filter"
	// KindDeniedHandler designates the denial handler type for the element.
	KindDeniedHandler Kind = "denied-handler"
)

// Marker is a declared rule designation attached to a type or method.
//
// Source and Root are populated by the registry when markers are read back:
// Source is the element the declaration sits on, Root is the name of the
// marker definition it was expanded from ("" for direct declarations). Two
// occurrences are the same declaration only when both match.
type Marker struct {
	Kind        Kind
	Expression  string
	HandlerType string // KindDeniedHandler only

	Source string
	Root   string
}

// MethodRef identifies a method by declaring type name and method name.
type MethodRef struct {
	Type string
	Name string
}

// String returns the "Type.Name" element identifier.
func (m MethodRef) String() string { return m.Type + "." + m.Name }

// MethodSpec describes a method declaration being registered.
type MethodSpec struct {
	// Markers declared directly on the method.
	Markers []Marker
	// MarkerRefs names marker definitions attached to the method.
	MarkerRefs []string
	// Synthetic methods are compiler-generated bridges; marker search skips them.
	Synthetic bool
}

// TypeSpec describes a type being registered.
type TypeSpec struct {
	// Supertypes are the directly implemented interfaces and embedded types,
	// in declaration order. Traversal order is derived from this order.
	Supertypes []string
	// Markers declared directly on the type.
	Markers []Marker
	// MarkerRefs names marker definitions attached to the type.
	MarkerRefs []string
	// Methods declared on the type, keyed by method name.
	Methods map[string]MethodSpec
}

// Definition is a named, reusable marker bundle. Attaching a definition to an
// element counts as declaring each of its markers there, with the definition
// name recorded as the occurrence root.
type Definition struct {
	Markers []Marker
}
