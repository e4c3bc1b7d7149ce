package frontpage

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/frontpage/internal/platform/i18n"
	"github.com/louisbranch/frontpage/internal/services/web/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8080")
	}
	if cfg.CacheBackend != CacheMemory {
		t.Fatalf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheMemory)
	}
	if strings.Join(cfg.Locales.Supported, ",") != "en,fr" || cfg.Locales.Default != "en" {
		t.Fatalf("Locales = %+v", cfg.Locales)
	}
	if !cfg.APIEnabled {
		t.Fatal("APIEnabled = false, want true")
	}
	if cfg.API.StaleTime != 30*time.Second {
		t.Fatalf("API.StaleTime = %s, want %s", cfg.API.StaleTime, 30*time.Second)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("FRONTPAGE_LOCALES", "en,fr,pt-BR")
	t.Setenv("FRONTPAGE_CACHE_BACKEND", "redis")

	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "127.0.0.1:9001",
		"-default-locale", "pt-BR",
		"-api=false",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9001" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "127.0.0.1:9001")
	}
	if cfg.Locales.Default != "pt-BR" || len(cfg.Locales.Supported) != 3 {
		t.Fatalf("Locales = %+v", cfg.Locales)
	}
	if cfg.CacheBackend != CacheRedis {
		t.Fatalf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheRedis)
	}
	if cfg.APIEnabled {
		t.Fatal("APIEnabled = true, want false")
	}
}

func TestParseConfigRejectsDefaultOutsideSupported(t *testing.T) {
	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-locales", "en,fr", "-default-locale", "de"})
	if !errors.Is(err, i18n.ErrDefaultNotSupported) {
		t.Fatalf("ParseConfig() error = %v, want ErrDefaultNotSupported", err)
	}
}

func TestParseConfigRejectsEmptyLocales(t *testing.T) {
	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-locales", " , "}); err == nil {
		t.Fatal("expected error for empty locale list")
	}
}

func TestParseConfigRejectsUnknownCacheBackend(t *testing.T) {
	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-cache-backend", "memcached"})
	if err == nil || !strings.Contains(err.Error(), "FRONTPAGE_CACHE_BACKEND") {
		t.Fatalf("ParseConfig() error = %v, want cache backend error", err)
	}
}

func TestOpenCacheStoreMemoryHasNoStore(t *testing.T) {
	t.Parallel()

	store, err := openCacheStore(context.Background(), Config{CacheBackend: CacheMemory})
	if err != nil {
		t.Fatalf("openCacheStore() error = %v", err)
	}
	if store != nil {
		t.Fatalf("store = %T, want nil", store)
	}
}

func TestOpenCacheStoreSQLite(t *testing.T) {
	t.Parallel()

	store, err := openCacheStore(context.Background(), Config{
		CacheBackend: CacheSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "cache.db"),
	})
	if err != nil {
		t.Fatalf("openCacheStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if _, ok := store.(*sqlite.Store); !ok {
		t.Fatalf("store = %T, want *sqlite.Store", store)
	}
}

func TestOpenCacheStoreRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	if _, err := openCacheStore(context.Background(), Config{CacheBackend: "tape"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestRunStopsWhenContextIsCanceled(t *testing.T) {
	fs := flag.NewFlagSet("frontpage", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:0", "-api=false"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logs bytes.Buffer
	if err := RunWithOutput(ctx, cfg, &logs); err != nil {
		t.Fatalf("RunWithOutput() error = %v", err)
	}
}
