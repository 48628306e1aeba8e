package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillsenselab/authkit/authz"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("engine role prefix defaults", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Engine.RolePrefix != authz.DefaultRolePrefix {
			t.Errorf("expected role prefix %q, got %q", authz.DefaultRolePrefix, cfg.Engine.RolePrefix)
		}
	})

	t.Run("explicit role prefix kept", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Engine: EngineConfig{RolePrefix: "GROUP_"}}
		cfg.ApplyDefaults()
		if cfg.Engine.RolePrefix != "GROUP_" {
			t.Errorf("expected 'GROUP_', got %q", cfg.Engine.RolePrefix)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "invalid" }, "config.environment must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "config.logging"},
		{"missing role prefix", func(c *ServiceConfig) { c.Engine.RolePrefix = "" }, "config.engine"},
		{"malformed role prefix", func(c *ServiceConfig) { c.Engine.RolePrefix = "ROLE PREFIX_" }, "config.engine"},
		{"malformed default handler", func(c *ServiceConfig) { c.Engine.DefaultHandler = "bad key" }, "config.engine"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: auth-engine
environment: staging
version: "1.0.0"
engine:
  role_prefix: "PERM_"
  cache_failures: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
	}

	var cfg TestConfig
	err := LoadConfig("auth-engine", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "auth-engine" {
		t.Errorf("expected name 'auth-engine', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Engine.RolePrefix != "PERM_" {
		t.Errorf("expected role prefix 'PERM_', got %q", cfg.Engine.RolePrefix)
	}
	if !cfg.Engine.CacheFailures {
		t.Error("expected cache_failures=true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
	}

	var cfg TestConfig
	// With no config file found, LoadConfig still succeeds with zero values.
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error)    { return "/mock", nil }

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
