package methodauth

import (
	"github.com/skillsenselab/authkit/expr"
	"github.com/skillsenselab/authkit/introspect"
)

// RuleKind identifies which rule variant an Attribute carries.
type RuleKind int

const (
	// KindNoRule means no applicable rule was found for the method/type pair.
	KindNoRule RuleKind = iota
	// KindBeforeCall rules are evaluated before the guarded call runs.
	KindBeforeCall
	// KindAfterCall rules are evaluated against the completed call.
	KindAfterCall
	// KindResultFilter rules filter elements of the guarded call's result.
	KindResultFilter
)

// String returns the marker kind name for the rule kind.
func (k RuleKind) String() string {
	switch k {
	case KindBeforeCall:
		return string(introspect.KindBeforeCall)
	case KindAfterCall:
		return string(introspect.KindAfterCall)
	case KindResultFilter:
		return string(introspect.KindResultFilter)
	default:
		return "no-rule"
	}
}

// Attribute is the resolved, immutable authorization rule for one
// (method, runtime type) pair. Attributes are cached for the life of the
// resolver and shared across concurrent readers.
type Attribute struct {
	kind       RuleKind
	expression string
	predicate  expr.Predicate
	handler    DeniedHandler
}

// noRuleAttribute is the shared sentinel cached for pairs with no applicable
// rule, so negative lookups are as cheap as positive ones.
var noRuleAttribute = &Attribute{kind: KindNoRule}

// HasRule reports whether an applicable rule was found.
func (a *Attribute) HasRule() bool { return a.kind != KindNoRule }

// Kind returns the rule variant.
func (a *Attribute) Kind() RuleKind { return a.kind }

// Expression returns the raw rule text the predicate was compiled from.
func (a *Attribute) Expression() string { return a.expression }

// Predicate returns the compiled predicate, or nil for NoRule attributes.
func (a *Attribute) Predicate() expr.Predicate { return a.predicate }

// Handler returns the denial handler for before-call and after-call rules.
// It is nil for NoRule and result-filter attributes.
func (a *Attribute) Handler() DeniedHandler { return a.handler }
