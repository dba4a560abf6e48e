package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ghostify.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadServerConfig(t *testing.T) {
	path := writeConfig(t, `
addr = ":9090"

[cache]
backend = "redis"
ttl = "12h"

[cache.redis]
addr = "cache.internal:6379"
db = 2

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://db.internal:27017"
database = "designs"
`)

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig() error: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != 12*time.Hour {
		t.Errorf("Cache.TTL = %v, want 12h", cfg.Cache.TTL.Duration)
	}
	if cfg.Cache.Redis.Addr != "cache.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis config = %+v", cfg.Cache.Redis)
	}
	if cfg.Store.Backend != "mongo" {
		t.Errorf("Store.Backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Store.Mongo.URI != "mongodb://db.internal:27017" || cfg.Store.Mongo.Database != "designs" {
		t.Errorf("Mongo config = %+v", cfg.Store.Mongo)
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	// An empty file keeps every default.
	cfg, err := LoadServerConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadServerConfig() error: %v", err)
	}

	want := DefaultServerConfig()
	if cfg.Addr != want.Addr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, want.Addr)
	}
	if cfg.Cache.Backend != want.Cache.Backend {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, want.Cache.Backend)
	}
	if cfg.Store.Backend != want.Store.Backend {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, want.Store.Backend)
	}
}

func TestLoadServerConfigInvalidBackend(t *testing.T) {
	_, err := LoadServerConfig(writeConfig(t, `
[cache]
backend = "memcached"
`))
	if err == nil {
		t.Fatal("LoadServerConfig() should reject unknown cache backend")
	}
	if !strings.Contains(err.Error(), "memcached") {
		t.Errorf("error = %v, should name the bad backend", err)
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("LoadServerConfig() should fail for a missing file")
	}
}
