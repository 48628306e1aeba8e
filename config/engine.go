package config

import (
	"github.com/skillsenselab/authkit/authz"
	"github.com/skillsenselab/authkit/validation"
)

// EngineConfig carries the resolution engine settings.
type EngineConfig struct {
	// RolePrefix is prepended to bare role names in rule expressions.
	RolePrefix string `yaml:"role_prefix" mapstructure:"role_prefix" validate:"required"`
	// CacheFailures memoizes failed resolutions instead of retrying them.
	// Only safe when rule configuration is immutable after startup.
	CacheFailures bool `yaml:"cache_failures" mapstructure:"cache_failures"`
	// DefaultHandler optionally names the container key of the denial
	// handler to use when no designation is present. Empty means the
	// built-in throwing handler.
	DefaultHandler string `yaml:"default_handler" mapstructure:"default_handler"`
}

// ApplyDefaults applies default values to engine configuration.
func (c *EngineConfig) ApplyDefaults() {
	if c.RolePrefix == "" {
		c.RolePrefix = authz.DefaultRolePrefix
	}
}

// Validate validates engine configuration.
func (c *EngineConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New().
		RolePrefix("role_prefix", c.RolePrefix).
		OptionalHandlerKey("default_handler", c.DefaultHandler)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
