package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sponnect/sponnect/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SPONNECT_ADDR", "")
	t.Setenv("SPONNECT_JWT_SECRET", "")
	t.Setenv("SPONNECT_DATABASE_PATH", "")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DatabasePath != "sponnect.db" {
		t.Errorf("DatabasePath = %q, want sponnect.db", cfg.DatabasePath)
	}
	if cfg.TokenDuration != time.Hour {
		t.Errorf("TokenDuration = %v, want 1h", cfg.TokenDuration)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, want 15s", cfg.APITimeout)
	}
}

func TestLoadConfigEnvFallback(t *testing.T) {
	t.Setenv("SPONNECT_ADDR", ":9999")
	t.Setenv("SPONNECT_JWT_SECRET", "envsecret")
	t.Setenv("SPONNECT_DATABASE_PATH", "/tmp/env.db")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.JWTSecret != "envsecret" {
		t.Errorf("JWTSecret = %q, want envsecret", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "/tmp/env.db" {
		t.Errorf("DatabasePath = %q, want /tmp/env.db", cfg.DatabasePath)
	}
}

func TestLoadConfigYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("addr: \":7070\"\njwt_secret: yamlsecret\ndatabase_path: /tmp/yaml.db\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if cfg.JWTSecret != "yamlsecret" {
		t.Errorf("JWTSecret = %q, want yamlsecret", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "/tmp/yaml.db" {
		t.Errorf("DatabasePath = %q, want /tmp/yaml.db", cfg.DatabasePath)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
