// Package introspect provides the static type model the resolution engine
// searches: registered types, their supertype hierarchies, method
// declarations, and attached rule markers.
//
// Go has no runtime annotation metadata, so the model is built by an explicit
// registration step — typically generated at build time or written by hand at
// startup:
//
//	reg := introspect.NewRegistry()
//	reg.RegisterType("PaymentApi", introspect.TypeSpec{
//	    Methods: map[string]introspect.MethodSpec{
//	        "Transfer": {Markers: []introspect.Marker{
//	            {Kind: introspect.KindBeforeCall, Expression: "hasRole('ADMIN')"},
//	        }},
//	    },
//	})
//	reg.RegisterType("AccountService", introspect.TypeSpec{
//	    Supertypes: []string{"PaymentApi"},
//	    Methods:    map[string]introspect.MethodSpec{"Transfer": {}},
//	})
//
// Named marker definitions (DefineMarker) play the role of meta-annotations:
// attaching a definition to an element declares each of the definition's
// markers there, with the definition name recorded as the occurrence root so
// the engine can tell two definitions' contributions apart.
//
// Registration happens once at load time. All read operations are safe for
// concurrent use and deterministic for a given registration set.
package introspect
