package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/evoscape/pkg/pipeline"
)

// Cache backend identifiers accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds user preferences loaded from ~/.config/evoscape/config.toml.
// Every field has a working default, so the file is entirely optional.
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the Redis server (redis backend only).
	RedisAddr string `toml:"redis_addr"`
}

// StoreConfig configures the shared view store.
type StoreConfig struct {
	// MongoURI is the connection string for the MongoDB view store.
	// Empty disables the store commands unless --uri is given.
	MongoURI string `toml:"mongo_uri"`
}

// DefaultsConfig overrides the built-in pipeline defaults.
type DefaultsConfig struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"`
	MaxDepth       int     `toml:"max_depth"`
	GridResolution int     `toml:"grid_resolution"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Defaults: DefaultsConfig{
			Width:          pipeline.DefaultWidth,
			Height:         pipeline.DefaultHeight,
			MaxDepth:       pipeline.DefaultMaxDepth,
			GridResolution: pipeline.DefaultGridResolution,
		},
	}
}

// configPath returns the config file path using XDG standard
// (~/.config/evoscape/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, layering it over the defaults.
// A missing file is not an error and yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0])
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the user's config file, falling back to the
// defaults on any error. Used at CLI startup where a broken config file
// should not make every command unusable.
func LoadConfigOrDefault() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// validate checks fields that would otherwise fail deep inside a command.
func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend is redis but redis_addr is empty")
	}
	return nil
}
