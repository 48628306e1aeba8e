// Package validation provides input validation for authkit configuration
// and registration inputs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used by the config package; the programmatic builder suits ad-hoc checks
// like handler keys and invocation identifiers.
//
// # Struct Tag Validation
//
//	type EngineConfig struct {
//	    RolePrefix string `validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("handler_key", key).RequiredUUID("invocation_id", id)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
