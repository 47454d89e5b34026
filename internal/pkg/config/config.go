// Package config holds the settings shared by the catalog binaries.
// Values come from a YAML or JSON file and can be overridden by CATALOG_*
// environment variables (CATALOG_BACKEND, CATALOG_REMOTE_BASE_URL, ...).
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backing store modes.
const (
	BackendRemote  = "remote"
	BackendLocal   = "local"
	BackendSpanner = "spanner"
)

// Config is the complete configuration of a catalog binary.
type Config struct {
	Backend string        `mapstructure:"backend" json:"backend" yaml:"backend"`
	Remote  RemoteConfig  `mapstructure:"remote" json:"remote" yaml:"remote"`
	Local   LocalConfig   `mapstructure:"local" json:"local" yaml:"local"`
	Spanner SpannerConfig `mapstructure:"spanner" json:"spanner" yaml:"spanner"`
	Catalog CatalogConfig `mapstructure:"catalog" json:"catalog" yaml:"catalog"`
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
}

// RemoteConfig points at the catalog HTTP API.
type RemoteConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8989/api
	BaseURL string        `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// LocalConfig locates the LevelDB database holding the catalog snapshot.
type LocalConfig struct {
	Path string `mapstructure:"path" json:"path" yaml:"path"`
	Key  string `mapstructure:"key" json:"key" yaml:"key"`
}

type SpannerConfig struct {
	// Database is the full resource name projects/P/instances/I/databases/D.
	Database string `mapstructure:"database" json:"database" yaml:"database"`
}

type CatalogConfig struct {
	PageSize int `mapstructure:"page_size" json:"page_size" yaml:"page_size"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" json:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" json:"level" yaml:"level"`
	// Format is text or json.
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendRemote,
		Remote: RemoteConfig{
			BaseURL: "http://localhost:8989/api",
			Timeout: 10 * time.Second,
		},
		Local: LocalConfig{
			Path: "catalog.db",
			Key:  "products",
		},
		Spanner: SpannerConfig{
			Database: "projects/test-project/instances/emulator-instance/databases/test-db",
		},
		Catalog: CatalogConfig{PageSize: 10},
		Server: ServerConfig{
			Addr:            ":8989",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ServerDefaults is DefaultConfig with the local backend, which is what the
// API server runs on when no backend is configured.
func ServerDefaults() *Config {
	c := DefaultConfig()
	c.Backend = BackendLocal
	return c
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendRemote:
		u, err := url.Parse(c.Remote.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("remote.base_url must be an absolute URL, got %q", c.Remote.BaseURL)
		}
		if c.Remote.Timeout <= 0 {
			return fmt.Errorf("remote.timeout must be positive")
		}
	case BackendLocal:
		if strings.TrimSpace(c.Local.Path) == "" {
			return fmt.Errorf("local.path is required")
		}
	case BackendSpanner:
		if !strings.HasPrefix(c.Spanner.Database, "projects/") {
			return fmt.Errorf("spanner.database must look like projects/P/instances/I/databases/D")
		}
	default:
		return fmt.Errorf("backend must be one of %s, %s, %s; got %q",
			BackendRemote, BackendLocal, BackendSpanner, c.Backend)
	}

	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog.page_size must be at least 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// LoadFromReader decodes a configuration in the given format ("yaml", "yml"
// or "json") on top of base (DefaultConfig when nil). base is not modified.
// Environment variables are not applied.
func LoadFromReader(r io.Reader, format string, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	config := new(Config)
	*config = *base
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
