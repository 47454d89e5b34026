package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CATALOG"

// StdinPath is the config path that makes Open read the configuration from
// standard input.
const StdinPath = "-"

// ViperConfig is a Config loaded through viper that can follow changes of
// its file. Get and Subscribe are safe for concurrent use.
type ViperConfig struct {
	viper      *viper.Viper
	configFile string
	defaults   *Config

	mu          sync.RWMutex
	config      *Config
	subscribers []func(*Config)
}

// Load reads configFile (optional, "" for defaults and environment only),
// applies CATALOG_* overrides and validates the result.
func Load(configFile string) (*ViperConfig, error) {
	return Open(configFile, nil, DefaultConfig())
}

// Open is Load on top of the given defaults. With path StdinPath the
// configuration is decoded from stdin as YAML (JSON is accepted too); it gets
// no environment overrides and is never reloaded.
func Open(path string, stdin io.Reader, defaults *Config) (*ViperConfig, error) {
	if defaults == nil {
		defaults = DefaultConfig()
	}
	if path == StdinPath {
		if stdin == nil {
			return nil, fmt.Errorf("config from stdin requested but no input given")
		}
		config, err := LoadFromReader(stdin, "yaml", defaults)
		if err != nil {
			return nil, err
		}
		return &ViperConfig{defaults: defaults, config: config}, nil
	}

	v := viper.New()
	setDefaults(v, defaults)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := decode(v, defaults)
	if err != nil {
		return nil, err
	}

	return &ViperConfig{
		viper:      v,
		configFile: path,
		defaults:   defaults,
		config:     config,
	}, nil
}

// Get returns the current configuration.
func (vc *ViperConfig) Get() *Config {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.config
}

// Subscribe registers fn to be called with every valid reloaded configuration.
func (vc *ViperConfig) Subscribe(fn func(*Config)) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.subscribers = append(vc.subscribers, fn)
}

// Watch starts following the config file. Invalid edits are logged and
// ignored; the previous configuration stays in effect. No-op without a file.
func (vc *ViperConfig) Watch() {
	if vc.viper == nil || vc.configFile == "" {
		return
	}
	vc.viper.OnConfigChange(vc.handleChange)
	vc.viper.WatchConfig()
}

func (vc *ViperConfig) handleChange(e fsnotify.Event) {
	slog.Info("config file changed", "file", e.Name, "op", e.Op.String())

	next, err := decode(vc.viper, vc.defaults)
	if err != nil {
		slog.Warn("config reload rejected", "file", e.Name, "err", err)
		return
	}

	vc.mu.Lock()
	vc.config = next
	subscribers := make([]func(*Config), len(vc.subscribers))
	copy(subscribers, vc.subscribers)
	vc.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
}

func decode(v *viper.Viper, defaults *Config) (*Config, error) {
	config := new(Config)
	*config = *defaults
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// setDefaults registers every key so that AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("backend", d.Backend)
	v.SetDefault("remote.base_url", d.Remote.BaseURL)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
	v.SetDefault("local.path", d.Local.Path)
	v.SetDefault("local.key", d.Local.Key)
	v.SetDefault("spanner.database", d.Spanner.Database)
	v.SetDefault("catalog.page_size", d.Catalog.PageSize)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
