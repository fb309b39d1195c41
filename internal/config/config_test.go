package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DemoEmail != "admin@example.com" {
		t.Errorf("DemoEmail = %q", cfg.DemoEmail)
	}
	if cfg.ExportInterval != 0 {
		t.Errorf("ExportInterval = %v, want disabled", cfg.ExportInterval)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("CRMDESK_HTTP_ADDR", ":9999")
	t.Setenv("CRMDESK_DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("CRMDESK_EXPORT_INTERVAL", "5m")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.HTTPAddr != ":9999" || cfg.DatabaseURL != "postgres://localhost/crm" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ExportInterval != 5*time.Minute {
		t.Errorf("ExportInterval = %v", cfg.ExportInterval)
	}
}

func TestLoadServerBadInterval(t *testing.T) {
	t.Setenv("CRMDESK_EXPORT_INTERVAL", "often")
	if _, err := LoadServer(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("CRMDESK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("CRMDESK_API_URL", "")
	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "http://localhost:8081" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}

	t.Setenv("CRMDESK_API_URL", "https://crm.example.com")
	cfg, err = LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "https://crm.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
}

func TestLoadClientConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "api_url = \"https://file.example.com\"\nno_color = true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRMDESK_CONFIG", path)
	t.Setenv("CRMDESK_API_URL", "")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "https://file.example.com" {
		t.Errorf("APIURL = %q, want file value", cfg.APIURL)
	}
	if !cfg.NoColor {
		t.Error("NoColor = false, want true from file")
	}

	// Environment takes precedence over the file.
	t.Setenv("CRMDESK_API_URL", "https://env.example.com")
	cfg, err = LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, want env value", cfg.APIURL)
	}
}

func TestLoadClientMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CRMDESK_CONFIG", path)
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
