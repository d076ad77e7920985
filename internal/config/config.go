// Package config handles loading and hot-reloading configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDateLayout is the Go time layout used for create_time and
// collection_time stamps when the config does not override it.
const DefaultDateLayout = "2006-01-02 15:04:05"

// Config is the full application configuration.
type Config struct {
	// DateLayout is the Go time layout for record timestamps.
	DateLayout string `mapstructure:"date_layout" yaml:"date_layout"`

	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Cleaner CleanerConfig `mapstructure:"cleaner" yaml:"cleaner"`
}

// StorageConfig selects the recorder backend for exports.
type StorageConfig struct {
	// Format is "csv" or "sqlite".
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig configures the web API mode.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// CleanerConfig tunes text sanitization.
type CleanerConfig struct {
	// MaxNameWidth caps cleaned names at a display width.
	MaxNameWidth int `mapstructure:"max_name_width" yaml:"max_name_width"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DateLayout: DefaultDateLayout,
		Storage:    StorageConfig{Format: "csv"},
		Server:     ServerConfig{Host: "127.0.0.1", Port: "5555"},
		Cleaner:    CleanerConfig{MaxNameWidth: 64},
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg

	return m, nil
}

// initViper sets up viper with defaults and config file.
func (m *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("date_layout", defaults.DateLayout)
	viper.SetDefault("storage", defaults.Storage)
	viper.SetDefault("server", defaults.Server)
	viper.SetDefault("cleaner", defaults.Cleaner)

	// Environment variables with TIKTOKDL_ prefix
	viper.SetEnvPrefix("TIKTOKDL")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.tiktokdl")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback for config changes.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (m *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.load()
		if err != nil {
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# tiktokdl configuration
# Values can also be set via TIKTOKDL_* environment variables.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
