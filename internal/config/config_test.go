package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dealdash.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSubstitutesEnv(t *testing.T) {
	t.Setenv("TEST_DD_DSN", "postgres://u:p@localhost/dd")
	t.Setenv("TEST_DD_PORT", "9000")

	path := writeConfig(t, `{
		"server": {"port": ${TEST_DD_PORT:8000}, "log_level": "${TEST_DD_LOG:info}"},
		"database": {"postgres": {"dsn": "${TEST_DD_DSN:}"}},
		"auth": {"enabled": ${TEST_DD_AUTH:false}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from env, got %d", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Server.LogLevel)
	}
	if cfg.Database.Postgres.DSN != "postgres://u:p@localhost/dd" {
		t.Errorf("expected dsn from env, got %q", cfg.Database.Postgres.DSN)
	}
	if cfg.Auth.Enabled {
		t.Error("expected auth disabled by default")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Migrations != "migrations" {
		t.Errorf("expected default migrations dir, got %q", cfg.Migrations)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
