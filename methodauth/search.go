package methodauth

import (
	"github.com/skillsenselab/authkit/errors"
	"github.com/skillsenselab/authkit/introspect"
)

// occurrence is a marker found during a hierarchy search together with the
// type that declared it, which decides shadowing between chained declarations.
type occurrence struct {
	marker        introspect.Marker
	declaringType string
}

// findUniqueMethodMarker searches for a marker of the given kind on the
// method: the declaration itself and every declaration of the same method in
// the declaring type's supertype hierarchy, meta-markers included. Exactly
// one surviving occurrence is returned; conflicting occurrences produce an
// AMBIGUOUS_RULE error; zero yield nil.
func findUniqueMethodMarker(reg *introspect.Registry, method introspect.MethodRef, kind introspect.Kind) (*introspect.Marker, error) {
	var found []occurrence
	for _, typeName := range reg.Hierarchy(method.Type) {
		if !reg.DeclaresMethod(typeName, method.Name) {
			continue
		}
		ref := introspect.MethodRef{Type: typeName, Name: method.Name}
		for _, m := range reg.MarkersOnMethod(ref) {
			if m.Kind == kind {
				found = append(found, occurrence{marker: m, declaringType: typeName})
			}
		}
	}
	return uniqueOccurrence(reg, found, method.String(), kind)
}

// findUniqueTypeMarker searches for a marker of the given kind on the type
// and its supertype hierarchy, meta-markers included.
func findUniqueTypeMarker(reg *introspect.Registry, typeName string, kind introspect.Kind) (*introspect.Marker, error) {
	var found []occurrence
	for _, name := range reg.Hierarchy(typeName) {
		for _, m := range reg.MarkersOnType(name) {
			if m.Kind == kind {
				found = append(found, occurrence{marker: m, declaringType: name})
			}
		}
	}
	return uniqueOccurrence(reg, found, typeName, kind)
}

// uniqueOccurrence reduces hierarchy search results to the single applicable
// marker. A declaration shadows another when its declaring type is a strict
// subtype — the closest declaration in a chain wins. Occurrences surviving
// shadowing are compared by declaration identity (source element plus meta
// root); more than one distinct declaration is ambiguous and never resolved
// by precedence, because silently picking one would silently drop a security
// rule.
func uniqueOccurrence(reg *introspect.Registry, found []occurrence, element string, kind introspect.Kind) (*introspect.Marker, error) {
	if len(found) == 0 {
		return nil, nil
	}

	survivors := make([]occurrence, 0, len(found))
	for i, candidate := range found {
		shadowed := false
		for j, other := range found {
			if i == j {
				continue
			}
			if isStrictSubtype(reg, other.declaringType, candidate.declaringType) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			survivors = append(survivors, candidate)
		}
	}

	if len(survivors) == 0 {
		// Mutual shadowing: only possible when the registered hierarchy is
		// cyclic. No declaration is closest, so none can be picked.
		return nil, errors.AmbiguousRule(element, string(kind), occurrenceSources(found))
	}

	first := survivors[0]
	for _, o := range survivors[1:] {
		if o.marker.Source != first.marker.Source || o.marker.Root != first.marker.Root {
			return nil, errors.AmbiguousRule(element, string(kind), occurrenceSources(survivors))
		}
	}
	return &first.marker, nil
}

// isStrictSubtype reports whether sub has sup in its supertype hierarchy.
func isStrictSubtype(reg *introspect.Registry, sub, sup string) bool {
	if sub == sup {
		return false
	}
	for _, name := range reg.Supertypes(sub) {
		if name == sup {
			return true
		}
	}
	return false
}

func occurrenceSources(found []occurrence) []string {
	sources := make([]string, 0, len(found))
	for _, o := range found {
		src := o.marker.Source
		if o.marker.Root != "" {
			src += " (via " + o.marker.Root + ")"
		}
		sources = append(sources, src)
	}
	return sources
}
