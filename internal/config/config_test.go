//nolint:testpackage // Testing internal config requires same package access
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Name != "advisor" {
		t.Errorf("expected default service name, got %q", cfg.Service.Name)
	}
	if cfg.Service.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Service.Port)
	}
	if cfg.Retrieval.K != 2 {
		t.Errorf("expected default k 2, got %d", cfg.Retrieval.K)
	}
	if cfg.Retrieval.MaxContentLength != 1500 {
		t.Errorf("expected default max content length 1500, got %d", cfg.Retrieval.MaxContentLength)
	}
	if cfg.Conversation.MaxMessages != 3 {
		t.Errorf("expected default max messages 3, got %d", cfg.Conversation.MaxMessages)
	}
	if cfg.Redis.HistoryTTL != 24*time.Hour {
		t.Errorf("expected default history TTL 24h, got %v", cfg.Redis.HistoryTTL)
	}
	if cfg.Models.GeneratorTimeout != 60*time.Second {
		t.Errorf("expected default generator timeout 60s, got %v", cfg.Models.GeneratorTimeout)
	}
	if cfg.Moderation.Workers != 4 || cfg.Moderation.QueueSize != 256 {
		t.Errorf("unexpected moderation defaults %+v", cfg.Moderation)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
service:
  name: advisor-staging
  port: 9090
  debug: true
database:
  host: db.internal
  port: 5433
redis:
  address: cache.internal:6379
  history_ttl: 2h
retrieval:
  k: 5
  max_comments: 10
models:
  generator_timeout: 90s
moderation:
  workers: 2
  queue_size: 32
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Name != "advisor-staging" {
		t.Errorf("unexpected name %q", cfg.Service.Name)
	}
	if cfg.Service.Port != 9090 {
		t.Errorf("unexpected port %d", cfg.Service.Port)
	}
	if !cfg.Service.Debug {
		t.Error("expected debug true")
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Redis.HistoryTTL != 2*time.Hour {
		t.Errorf("unexpected history TTL %v", cfg.Redis.HistoryTTL)
	}
	if cfg.Retrieval.K != 5 || cfg.Retrieval.MaxComments != 10 {
		t.Errorf("unexpected retrieval config %+v", cfg.Retrieval)
	}
	// Unset fields still get defaults.
	if cfg.Retrieval.MaxContentLength != 1500 {
		t.Errorf("expected default max content length, got %d", cfg.Retrieval.MaxContentLength)
	}
	if cfg.Models.GeneratorTimeout != 90*time.Second {
		t.Errorf("unexpected generator timeout %v", cfg.Models.GeneratorTimeout)
	}
	if cfg.Models.EmbedderURL != "http://embedder:8090" {
		t.Errorf("expected default embedder URL, got %q", cfg.Models.EmbedderURL)
	}
	if cfg.Moderation.Workers != 2 || cfg.Moderation.QueueSize != 32 {
		t.Errorf("unexpected moderation config %+v", cfg.Moderation)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("service: [not a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	content := `
service:
  port: 9090
database:
  host: db.internal
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ADVISOR_PORT", "7070")
	t.Setenv("POSTGRES_HOST", "db.override")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("APP_DEBUG", "yes")
	t.Setenv("MODERATION_WORKERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.Port != 7070 {
		t.Errorf("env must win over file, got port %d", cfg.Service.Port)
	}
	if cfg.Database.Host != "db.override" {
		t.Errorf("env must win over file, got host %q", cfg.Database.Host)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("unexpected password %q", cfg.Database.Password)
	}
	if !cfg.Service.Debug {
		t.Error("expected APP_DEBUG=yes to parse as true")
	}
	if cfg.Moderation.Workers != 8 {
		t.Errorf("unexpected workers %d", cfg.Moderation.Workers)
	}
}

func TestLoad_InvalidEnvIntIgnored(t *testing.T) {
	t.Setenv("ADVISOR_PORT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Service.Port != 8080 {
		t.Errorf("malformed env value must not clobber the default, got %d", cfg.Service.Port)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	if got := GetConfigPath("config.yml"); got != "config.yml" {
		t.Errorf("expected default path, got %q", got)
	}

	t.Setenv("CONFIG_PATH", "/etc/advisor/config.yml")
	if got := GetConfigPath("config.yml"); got != "/etc/advisor/config.yml" {
		t.Errorf("expected env path, got %q", got)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "yes", " Yes "}
	for _, s := range truthy {
		if !parseBool(s) {
			t.Errorf("expected %q to be true", s)
		}
	}
	falsy := []string{"false", "0", "no", "", "maybe"}
	for _, s := range falsy {
		if parseBool(s) {
			t.Errorf("expected %q to be false", s)
		}
	}
}
