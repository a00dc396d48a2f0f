// Package config loads storefront settings from YAML (or TOML, chosen by file
// extension) with environment overrides on top.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"storefront-go/infrastructure/logging"
)

// Environment variables read by LoadFromReader.
const (
	EnvAPIURL   = "STOREFRONT_API_URL"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"
	EnvAddr     = "STOREFRONT_ADDR"
)

// Config is the full storefront configuration.
type Config struct {
	API    APIConfig    `yaml:"api" toml:"api"`
	Paths  PathsConfig  `yaml:"paths" toml:"paths"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Server ServerConfig `yaml:"server" toml:"server"`
	Smoke  SmokeConfig  `yaml:"smoke" toml:"smoke"`
}

// APIConfig locates the storefront backend.
type APIConfig struct {
	// BaseURL empty runs without an API: every request reports Offline.
	BaseURL        string   `yaml:"base_url" toml:"base_url"`
	Timeout        Duration `yaml:"timeout" toml:"timeout"`
	HealthPath     string   `yaml:"health_path" toml:"health_path"`
	HealthInterval Duration `yaml:"health_interval" toml:"health_interval"`
}

// PathsConfig names the locations presenters redirect to.
type PathsConfig struct {
	Home       string `yaml:"home" toml:"home"`
	Offline    string `yaml:"offline" toml:"offline"`
	Login      string `yaml:"login" toml:"login"`
	AfterLogin string `yaml:"after_login" toml:"after_login"`
}

// LogConfig configures infrastructure/logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	Dir   string `yaml:"dir" toml:"dir"`
	JSON  bool   `yaml:"json" toml:"json"`
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
	// Dir holds index.html, wasm_exec.js and the compiled bundle.
	Dir string `yaml:"dir" toml:"dir"`
	// Proxy forwards /api/ to API.BaseURL.
	Proxy bool `yaml:"proxy" toml:"proxy"`
}

// SmokeConfig configures the headless navigation check.
type SmokeConfig struct {
	Headless bool     `yaml:"headless" toml:"headless"`
	Timeout  Duration `yaml:"timeout" toml:"timeout"`
	// Links are in-app paths clicked in order after boot.
	Links []string `yaml:"links" toml:"links"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080",
			Timeout:        Duration{10 * time.Second},
			HealthPath:     "/api/v1/session",
			HealthInterval: Duration{15 * time.Second},
		},
		Paths: PathsConfig{
			Home:       "/",
			Offline:    "/offline",
			Login:      "/login",
			AfterLogin: "/",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":3000",
			Dir:  "web",
		},
		Smoke: SmokeConfig{
			Headless: true,
			Timeout:  Duration{30 * time.Second},
			Links:    []string{"/items/1", "/item/1"},
		},
	}
}

// Load reads the file at path. A missing file yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(bytes.NewReader(data))
	}
	return LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader decodes YAML over the defaults, then applies environment
// overrides and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg)
}

// LoadTOML is LoadFromReader for TOML input.
func LoadTOML(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
}

// Validate checks the values the storefront cannot start without.
func (c *Config) Validate() error {
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid api base_url %q", c.API.BaseURL)
		}
	}
	for name, p := range map[string]string{
		"home":        c.Paths.Home,
		"offline":     c.Paths.Offline,
		"login":       c.Paths.Login,
		"after_login": c.Paths.AfterLogin,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("paths.%s must start with /: %q", name, p)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Logging converts the log section for logging.Setup.
func (c *Config) Logging() *logging.Config {
	lc := logging.DefaultConfig()
	lc.Level, _ = logging.ParseLevel(c.Log.Level)
	lc.Dir = c.Log.Dir
	lc.JSON = c.Log.JSON
	return lc
}

// LogLevel returns the parsed log level, info when invalid.
func (c *Config) LogLevel() slog.Level {
	l, _ := logging.ParseLevel(c.Log.Level)
	return l
}
