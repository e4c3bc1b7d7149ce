// Package frontpage parses front page command configuration and launches the
// web runtime.
package frontpage

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	entrypoint "github.com/louisbranch/frontpage/internal/platform/cmd"
	"github.com/louisbranch/frontpage/internal/platform/config"
	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/platform/logging"
	"github.com/louisbranch/frontpage/internal/platform/markdown"
	"github.com/louisbranch/frontpage/internal/platform/querycache"
	"github.com/louisbranch/frontpage/internal/platform/timeouts"
	"github.com/louisbranch/frontpage/internal/services/web"
	"github.com/louisbranch/frontpage/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/frontpage/internal/services/web/storage/sqlite"
)

// Cache backends selectable with FRONTPAGE_CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

const sqliteSweepInterval = time.Minute

// Config holds front page command configuration.
type Config struct {
	HTTPAddr     string `env:"FRONTPAGE_HTTP_ADDR" envDefault:"localhost:8080" validate:"required"`
	APIEnabled   bool   `env:"FRONTPAGE_API_ENABLED" envDefault:"true"`
	CacheBackend string `env:"FRONTPAGE_CACHE_BACKEND" envDefault:"memory" validate:"oneof=memory redis sqlite"`
	SQLitePath   string `env:"FRONTPAGE_SQLITE_PATH" envDefault:"data/frontpage-cache.db"`

	Locales i18n.LocaleConfig
	API     apiclient.Config
	Redis   querycache.RedisConfig
	Log     logging.Config
	Scheme  requestmeta.SchemePolicy
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	locales := strings.Join(cfg.Locales.Supported, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&locales, "locales", locales, "Comma-separated supported locales")
	fs.StringVar(&cfg.Locales.Default, "default-locale", cfg.Locales.Default, "Locale the root path redirects to")
	fs.StringVar(&cfg.API.BaseURL, "api-base-url", cfg.API.BaseURL, "Backend API base URL")
	fs.BoolVar(&cfg.APIEnabled, "api", cfg.APIEnabled, "Fetch data from the backend API")
	fs.StringVar(&cfg.CacheBackend, "cache-backend", cfg.CacheBackend, "Query cache backend: memory, redis, or sqlite")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite cache database path")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Locales.Supported = strings.Split(locales, ",")
	cfg.Locales = cfg.Locales.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors, including a default locale outside
// the supported set.
func (c Config) Validate() error {
	if err := c.Locales.Validate(); err != nil {
		return fmt.Errorf("locales: %w", err)
	}
	if err := config.Validate(c); err != nil {
		return err
	}
	if c.CacheBackend == CacheSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		return errors.New("sqlite path is required for the sqlite cache backend")
	}
	return nil
}

// Run starts the front page web runtime.
func Run(ctx context.Context, cfg Config) error {
	return RunWithOutput(ctx, cfg, os.Stdout)
}

// RunWithOutput starts the runtime with logs written to out.
func RunWithOutput(ctx context.Context, cfg Config, out io.Writer) error {
	logger, err := logging.New(cfg.Log, out)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(logger)

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceFrontpage, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		store, err := openCacheStore(ctx, cfg)
		if err != nil {
			return err
		}
		if store != nil {
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("close query cache store", "backend", cfg.CacheBackend, "error", err)
				}
			}()
		}
		if sweeper, ok := store.(*sqlite.Store); ok {
			go sweepExpired(ctx, sweeper, sqliteSweepInterval, logger)
		}

		queryOpts := []apiclient.QueryOption{
			apiclient.WithStaleTime(cfg.API.StaleTime),
			apiclient.WithRetry(cfg.API.RetryPolicy()),
			apiclient.WithLogger(logger),
		}
		if store != nil {
			queryOpts = append(queryOpts, apiclient.WithStore(store))
		}

		var client *apiclient.Client
		if cfg.APIEnabled {
			client, err = apiclient.NewClient(cfg.API)
			if err != nil {
				return fmt.Errorf("init api client: %w", err)
			}
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Locales:             cfg.Locales,
			RequestSchemePolicy: cfg.Scheme,
			API:                 client,
			Queries:             apiclient.NewQueryClient(queryOpts...),
			Markdown:            markdown.New(),
			Logger:              logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// openCacheStore opens the configured shared store. The memory backend has
// none and returns nil.
func openCacheStore(ctx context.Context, cfg Config) (querycache.Store, error) {
	switch cfg.CacheBackend {
	case "", CacheMemory:
		return nil, nil
	case CacheRedis:
		store, err := querycache.OpenRedis(ctx, cfg.Redis, timeouts.CachePing)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return store, nil
	case CacheSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

func sweepExpired(ctx context.Context, store *sqlite.Store, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.DeleteExpired(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.Warn("sweep expired cache rows", "error", err)
				}
				continue
			}
			if removed > 0 {
				logger.Debug("swept expired cache rows", "removed", removed)
			}
		}
	}
}
