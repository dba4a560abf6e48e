package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ghostify/pkg/cache"
	"github.com/matzehuels/ghostify/pkg/store"
)

// Cache backend names accepted in the server config.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNull  = "null"
)

// Store backend names accepted in the server config.
const (
	storeBackendMemory = "memory"
	storeBackendMongo  = "mongo"
)

// ServerConfig is the TOML configuration for the serve command.
//
// Example ghostify.toml:
//
//	addr = ":8080"
//
//	[cache]
//	backend = "file"   # file, redis, or null
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "memory" # memory or mongo
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
type ServerConfig struct {
	Addr  string      `toml:"addr"`
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir"` // file backend; XDG cache dir if empty
	TTL     duration          `toml:"ttl"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Backend string            `toml:"backend"`
	Mongo   store.MongoConfig `toml:"mongo"`
}

// duration wraps time.Duration for TOML decoding of strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultServerConfig returns the configuration used when no config
// file is given: file cache, in-memory store, port 8080.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr: ":8080",
		Cache: CacheConfig{
			Backend: cacheBackendFile,
		},
		Store: StoreConfig{
			Backend: storeBackendMemory,
		},
	}
}

// LoadServerConfig reads and validates a TOML config file. Fields left
// empty keep their defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ServerConfig) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNull:
	default:
		return fmt.Errorf("unknown cache backend: %q (must be 'file', 'redis', or 'null')", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case storeBackendMemory, storeBackendMongo:
	default:
		return fmt.Errorf("unknown store backend: %q (must be 'memory' or 'mongo')", c.Store.Backend)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	return nil
}
