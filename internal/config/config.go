// Package config loads the cardgen binaries' configuration: a YAML file over
// built-in defaults, .env files, then `env` tag overrides.
//
// .env files load in this order, earlier values winning:
//
//  1. ENV_FILE (when set, only this file is read)
//  2. .env.local
//  3. .env
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardgen/pkg/logging"
	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
	"github.com/goliatone/go-cardgen/pkg/templates"
)

// Config is the full binary configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Templates TemplatesConfig `yaml:"templates"`
	Themes    ThemesConfig    `yaml:"themes"`
	Logging   logging.Config  `yaml:"logging"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

// ServerConfig configures the HTTP preview service.
type ServerConfig struct {
	Address         string        `yaml:"address" env:"CARDGEN_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"CARDGEN_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"CARDGEN_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CARDGEN_SHUTDOWN_TIMEOUT"`
	BodyLimit       string        `yaml:"body_limit" env:"CARDGEN_BODY_LIMIT"`
}

// TemplatesConfig selects where template text comes from. The embedded set is
// always consulted last.
type TemplatesConfig struct {
	Dir     string        `yaml:"dir" env:"CARDGEN_TEMPLATES_DIR"`
	BaseURL string        `yaml:"base_url" env:"CARDGEN_TEMPLATES_URL"`
	Timeout time.Duration `yaml:"timeout" env:"CARDGEN_TEMPLATES_TIMEOUT"`
	// Preload lists platform:template keys fetched at start-up.
	Preload []string `yaml:"preload" env:"CARDGEN_PRELOAD"`
}

// ThemesConfig points at extra theme files and the default theme.
type ThemesConfig struct {
	Dir     string `yaml:"dir" env:"CARDGEN_THEMES_DIR"`
	Default string `yaml:"default" env:"CARDGEN_DEFAULT_THEME"`
}

// DefaultsConfig carries record defaults and the CLI target.
type DefaultsConfig struct {
	Platform string `yaml:"platform" env:"CARDGEN_DEFAULT_PLATFORM"`
	Template string `yaml:"template" env:"CARDGEN_DEFAULT_TEMPLATE"`
	Source   string `yaml:"source" env:"CARDGEN_DEFAULT_SOURCE"`
	Author   string `yaml:"author" env:"CARDGEN_DEFAULT_AUTHOR"`
	Category string `yaml:"category" env:"CARDGEN_DEFAULT_CATEGORY"`
}

// Record converts the record defaults for the sanitizer. Empty values keep the
// sanitizer's own defaults.
func (d DefaultsConfig) Record() sanitize.Defaults {
	return sanitize.Defaults{
		Source:   d.Source,
		Author:   d.Author,
		Category: d.Category,
	}
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			BodyLimit:       "1M",
		},
		Templates: TemplatesConfig{
			Timeout: templates.DefaultTimeout,
		},
		Logging: logging.Config{
			Level: "info",
		},
		Defaults: DefaultsConfig{
			Platform: platform.Instagram,
			Template: "post",
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file; values
// present in the file override the defaults and environment variables
// override both.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("config: load environment files: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Path returns CONFIG_PATH when set, otherwise fallback.
func Path(fallback string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return fallback
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Address) == "" {
		errs = append(errs, &ValidationError{Field: "server.address", Message: "is required"})
	}
	for field, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"templates.timeout":       c.Templates.Timeout,
	} {
		if d < 0 {
			errs = append(errs, &ValidationError{Field: field, Message: "must not be negative"})
		}
	}
	if base := c.Templates.BaseURL; base != "" &&
		!strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		errs = append(errs, &ValidationError{Field: "templates.base_url", Message: "must be an http(s) URL"})
	}
	if _, err := c.PreloadKeys(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error"})
	}
	return errors.Join(errs...)
}

// PreloadKeys parses Templates.Preload entries of the form platform:template.
func (c *Config) PreloadKeys() ([]templates.Key, error) {
	keys := make([]templates.Key, 0, len(c.Templates.Preload))
	for _, entry := range c.Templates.Preload {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		p, t, ok := strings.Cut(entry, ":")
		if !ok || p == "" || t == "" {
			return nil, &ValidationError{Field: "templates.preload", Message: fmt.Sprintf("%q is not platform:template", entry)}
		}
		keys = append(keys, templates.Key{Platform: p, Template: t})
	}
	return keys, nil
}
