package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want %q", cfg.Server.Port, "8080")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsdash.yaml")
	body := `
db_path: /var/lib/opsdash/data.db
server:
  port: "9000"
calendar:
  domain: ops.example.com
log:
  format: json
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OPSDASH_PORT", "9100")
	t.Setenv("OPSDASH_IMPORT_RATE_LIMIT", "3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/var/lib/opsdash/data.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, want env override %q", cfg.Server.Port, "9100")
	}
	if cfg.Server.ImportRateLimit != 3 {
		t.Errorf("import rate limit = %d, want 3", cfg.Server.ImportRateLimit)
	}
	if cfg.Calendar.Domain != "ops.example.com" {
		t.Errorf("domain = %q", cfg.Calendar.Domain)
	}
	if cfg.Calendar.Product != "Opsdash" {
		t.Errorf("product = %q, want default kept", cfg.Calendar.Product)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("server: [unclosed"), 0o600)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("OPSDASH_IMPORT_RATE_LIMIT", "lots")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric rate limit")
	}
}
