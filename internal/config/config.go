// Package config loads the oakdocs tool configuration (oakdocs.yaml).
//
// The tool configuration controls where content is read from, where
// artifacts are written and which serve/metrics features are enabled. It may
// override a small set of site options; the navigation and sidebar trees are
// never configurable here and always come from site.OakChain.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "oakdocs.yaml"

// Config is the tool configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteOverrides `yaml:"site,omitempty"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ContentConfig locates the markdown sources.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig controls where generated artifacts are written.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Clean bool   `yaml:"clean"` // remove the output directory before generating
}

// SiteOverrides replaces individual site options. Nil keeps the built-in value.
type SiteOverrides struct {
	Title           *string `yaml:"title,omitempty"`
	Description     *string `yaml:"description,omitempty"`
	Base            *string `yaml:"base,omitempty"`
	IgnoreDeadLinks *bool   `yaml:"ignore_dead_links,omitempty"`
}

// ServerConfig configures the inspect server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. Variables from .env and .env.local
// are loaded first without overriding the process environment, then
// ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, foundation.NotFoundError(fmt.Sprintf("configuration file not found: %s", path)).
				WithContext("path", path).
				WithCause(err).
				Build()
		}
		return nil, foundation.WrapError(err, foundation.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && foundation.HasCategory(err, foundation.CategoryNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes configuration data, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "failed to unmarshal config").Build()
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "docs"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "dist"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8089"
	}
}

// loadEnvFiles loads .env files from the working directory. godotenv.Load never
// overrides variables already present in the environment.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
	}
}
