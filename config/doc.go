// Package config provides configuration loading and validation for authkit
// applications.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with .env file support via godotenv. Applications embed
// ServiceConfig in their own config struct and call LoadConfig at startup:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	}
//
//	var cfg AppConfig
//	if err := config.LoadConfig("my-service", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
//
// EngineConfig carries the resolution engine settings (role prefix, failure
// caching) under the "engine" key.
package config
