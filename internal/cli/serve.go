package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghostify/internal/api"
	"github.com/matzehuels/ghostify/pkg/cache"
	"github.com/matzehuels/ghostify/pkg/pipeline"
	"github.com/matzehuels/ghostify/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may take after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the ghostify HTTP API server.

Without a config file the server listens on :8080 with a file cache and
an in-memory document store. A TOML config file selects the cache
backend (file, redis, null) and the store backend (memory, mongo).

Examples:
  ghostify serve
  ghostify serve --addr :9090
  ghostify serve --config ghostify.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultServerConfig()
			if configPath != "" {
				loaded, err := LoadServerConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe builds the cache and store backends, starts the server, and
// shuts it down gracefully when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	cc, err := buildCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer cc.Close()

	st, err := buildStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warnf("Close store: %v", err)
		}
	}()

	runner := pipeline.NewRunner(cc, c.Logger)
	handler := api.NewServer(runner, st, c.Logger)
	handler.CacheTTL = cfg.Cache.TTL.Duration

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s (cache: %s, store: %s)",
			cfg.Addr, cfg.Cache.Backend, cfg.Store.Backend)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// buildCache constructs the configured cache backend.
func buildCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case cacheBackendNull:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		rc := cfg.Redis
		if rc.Addr == "" {
			rc.Addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, rc)
	case cacheBackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// buildStore constructs the configured document store backend.
func buildStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case storeBackendMemory:
		return store.NewMemoryStore(), nil
	case storeBackendMongo:
		mc := cfg.Mongo
		if mc.URI == "" {
			mc.URI = "mongodb://localhost:27017"
		}
		return store.NewMongoStore(ctx, mc)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
