// Package config implements the configuration file shared by all commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FAU-CDI/vobox/pkg/ostore"
	"github.com/FAU-CDI/vobox/pkg/vobj"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration of a command.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Map     MapConfig     `yaml:"map"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig configures the object store.
type StoreConfig struct {
	// Dir is the directory containing the store.
	// For the file backend, records are written into the "ostore" directory inside of Dir.
	Dir string `yaml:"dir"`

	Backend Backend `yaml:"backend"`
	Enabled bool    `yaml:"enabled"`
}

// Backend names a kind of store backend.
type Backend string

const (
	BackendFile    Backend = "file"
	BackendLevelDB Backend = "leveldb"
)

// LevelDBName is the name of the leveldb database inside the store directory.
const LevelDBName = "ostore.leveldb"

// MapConfig configures the identity maps of a runtime.
type MapConfig struct {
	Buckets int    `yaml:"buckets"`
	Limit   uint64 `yaml:"limit"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// EnvStoreDir overrides the store directory when set.
const EnvStoreDir = "VOBOX_STORE_DIR"

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Dir:     ".",
			Backend: BackendFile,
			Enabled: true,
		},
		Map: MapConfig{
			Buckets: 127,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
// Missing values are taken from [Default].
// When path is empty or does not exist, returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// use the defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv(EnvStoreDir); dir != "" {
		c.Store.Dir = dir
	}
}

var (
	errUnknownBackend = errors.New("unknown store backend")
	errNoDir          = errors.New("no store directory configured")
	errBuckets        = errors.New("bucket count must be positive")
	errLevel          = errors.New("invalid logging level")
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Store.Dir == "" {
		errs = append(errs, errNoDir)
	}
	switch c.Store.Backend {
	case BackendFile, BackendLevelDB:
	default:
		errs = append(errs, fmt.Errorf("%w: %q (valid: %q, %q)", errUnknownBackend, c.Store.Backend, BackendFile, BackendLevelDB))
	}
	if c.Map.Buckets < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", errBuckets, c.Map.Buckets))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level returns the configured logging level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Logging.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", errLevel, c.Logging.Level)
	}
	return level, nil
}

// OpenStore creates the configured store.
// If the configuration enables the store, it is also enabled.
func (c *Config) OpenStore() (*ostore.Store, error) {
	var store *ostore.Store
	switch c.Store.Backend {
	case BackendFile:
		store = ostore.New(c.Store.Dir)
	case BackendLevelDB:
		store = ostore.NewWithBackend(&ostore.LevelBackend{Path: filepath.Join(c.Store.Dir, LevelDBName)})
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, c.Store.Backend)
	}

	if c.Store.Enabled {
		if err := store.Enable(); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Runtime creates a new runtime using the configured map parameters.
// The runtime mirrors objects into store, which may be nil.
func (c *Config) Runtime(store *ostore.Store, logger *slog.Logger) (*vobj.Runtime, error) {
	return vobj.New(vobj.Options{
		Buckets: c.Map.Buckets,
		Limit:   c.Map.Limit,
		Store:   store,
		Logger:  logger,
	})
}
