package methodauth

import (
	"github.com/skillsenselab/authkit/expr"
	"github.com/skillsenselab/authkit/introspect"
	"github.com/skillsenselab/authkit/logger"
)

// ruleRegistry resolves and caches attributes for one rule kind. The three
// registries of a Resolver share the type model and compiler but keep
// independent caches, since the same (method, type) pair may carry a rule of
// each kind.
type ruleRegistry struct {
	markerKind introspect.Kind
	ruleKind   RuleKind
	types      *introspect.Registry
	compiler   expr.Compiler
	handlers   *handlerResolver // nil for kinds without denial handling
	cache      *onceCache[resolutionKey, *Attribute]
	log        *logger.Logger
}

func newRuleRegistry(markerKind introspect.Kind, ruleKind RuleKind, types *introspect.Registry,
	compiler expr.Compiler, handlers *handlerResolver, cacheFailures bool, log *logger.Logger) *ruleRegistry {
	return &ruleRegistry{
		markerKind: markerKind,
		ruleKind:   ruleKind,
		types:      types,
		compiler:   compiler,
		handlers:   handlers,
		cache:      newOnceCache[resolutionKey, *Attribute](cacheFailures),
		log:        log,
	}
}

// attribute returns the cached attribute for the pair, resolving it on first
// use. The second result reports whether this call performed the resolution.
func (r *ruleRegistry) attribute(method introspect.MethodRef, runtimeType string) (*Attribute, bool, error) {
	key := resolutionKey{method: method, runtimeType: runtimeType}
	attr, computed, err := r.cache.getOrCompute(key, func() (*Attribute, error) {
		return r.resolveAttribute(method, runtimeType)
	})
	if err != nil {
		r.log.Error("authorization attribute resolution failed", logger.Fields(
			logger.FieldMethod, method.String(),
			logger.FieldRuntimeType, runtimeType,
			logger.FieldRuleKind, r.ruleKind.String(),
			logger.FieldError, err.Error(),
		))
		return nil, computed, err
	}
	if computed {
		r.log.Debug("authorization attribute resolved", logger.Fields(
			logger.FieldMethod, method.String(),
			logger.FieldRuntimeType, runtimeType,
			logger.FieldRuleKind, r.ruleKind.String(),
			"has_rule", attr.HasRule(),
		))
	}
	return attr, computed, nil
}

// resolveAttribute performs the uncached resolution: locate the unique marker
// for the most specific method (falling back to the target type), compile its
// expression, and attach the denial handler where the kind supports one.
func (r *ruleRegistry) resolveAttribute(method introspect.MethodRef, runtimeType string) (*Attribute, error) {
	specific := r.types.MostSpecificMethod(method, runtimeType)
	target := targetType(specific, runtimeType)

	marker, err := findUniqueMethodMarker(r.types, specific, r.markerKind)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		marker, err = findUniqueTypeMarker(r.types, target, r.markerKind)
		if err != nil {
			return nil, err
		}
	}
	if marker == nil {
		return noRuleAttribute, nil
	}

	predicate, err := r.compiler.Compile(marker.Expression)
	if err != nil {
		return nil, err
	}

	attr := &Attribute{
		kind:       r.ruleKind,
		expression: marker.Expression,
		predicate:  predicate,
	}
	if r.handlers != nil {
		handler, err := r.resolveHandler(specific, target)
		if err != nil {
			return nil, err
		}
		attr.handler = handler
	}
	return attr, nil
}

// resolveHandler locates the denied-handler designation for the element,
// method first and then type, and resolves it to an instance. No designation
// means the default handler.
func (r *ruleRegistry) resolveHandler(method introspect.MethodRef, target string) (DeniedHandler, error) {
	marker, err := findUniqueMethodMarker(r.types, method, introspect.KindDeniedHandler)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		marker, err = findUniqueTypeMarker(r.types, target, introspect.KindDeniedHandler)
		if err != nil {
			return nil, err
		}
	}
	if marker == nil {
		return r.handlers.resolve("")
	}
	return r.handlers.resolve(marker.HandlerType)
}

// targetType picks the type to search when the method declaration itself
// carries no marker: the runtime type when known, otherwise the declaring type.
func targetType(method introspect.MethodRef, runtimeType string) string {
	if runtimeType != "" {
		return runtimeType
	}
	return method.Type
}
