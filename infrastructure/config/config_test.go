package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Paths.Offline != "/offline" {
		t.Errorf("Paths.Offline = %q, want /offline", cfg.Paths.Offline)
	}
}

func TestLoadFromReader(t *testing.T) {
	input := `
api:
  base_url: https://shop.example.com
  timeout: 3s
paths:
  after_login: /orders
log:
  level: debug
smoke:
  links: [/cart]
`
	cfg, err := LoadFromReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.API.BaseURL != "https://shop.example.com" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Duration != 3*time.Second {
		t.Errorf("API.Timeout = %v, want 3s", cfg.API.Timeout)
	}
	if cfg.Paths.AfterLogin != "/orders" || cfg.Paths.Home != "/" {
		t.Errorf("Paths = %+v", cfg.Paths)
	}
	if cfg.API.HealthInterval.Duration != 15*time.Second {
		t.Errorf("API.HealthInterval = %v, want default 15s", cfg.API.HealthInterval)
	}
	if len(cfg.Smoke.Links) != 1 || cfg.Smoke.Links[0] != "/cart" {
		t.Errorf("Smoke.Links = %v", cfg.Smoke.Links)
	}
}

func TestLoadFromReader_Empty(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q, want :3000", cfg.Server.Addr)
	}
}

func TestLoadFromReader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "api: [unclosed"},
		{"relative path", "paths:\n  login: login\n"},
		{"bad url", "api:\n  base_url: localhost\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad duration", "api:\n  timeout: soon\n"},
		{"negative duration", "api:\n  timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromReader(strings.NewReader(tt.input)); err == nil {
				t.Error("LoadFromReader() error = nil, want error")
			}
		})
	}
}

func TestLoadFromReader_NoAPI(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("api:\n  base_url: \"\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, want empty", cfg.API.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://api.internal:9000")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvAddr, ":4000")

	cfg, err := LoadFromReader(strings.NewReader("log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.API.BaseURL != "http://api.internal:9000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":4000" {
		t.Errorf("Server.Addr = %q, want :4000", cfg.Server.Addr)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "storefront.yaml")
	if err := os.WriteFile(yamlPath, []byte("server:\n  addr: \":5000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("yaml Server.Addr = %q, want :5000", cfg.Server.Addr)
	}

	tomlPath := filepath.Join(dir, "storefront.toml")
	toml := "[server]\naddr = \":6000\"\n\n[api]\ntimeout = \"2s\"\n"
	if err := os.WriteFile(tomlPath, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(tomlPath)
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	if cfg.Server.Addr != ":6000" || cfg.API.Timeout.Duration != 2*time.Second {
		t.Errorf("toml config = %+v", cfg)
	}

	cfg, err = Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("missing Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLogging(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "error"
	cfg.Log.JSON = true

	lc := cfg.Logging()
	if lc.Level.String() != "ERROR" || !lc.JSON {
		t.Errorf("Logging() = %+v", lc)
	}
}
