package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/frontpage/internal/platform/querycache"
	"github.com/louisbranch/frontpage/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/frontpage/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store is a querycache.Store backed by SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates the cache database at path, dropping expired rows.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if _, err := store.DeleteExpired(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, querycache.ErrStoreClosed
	}
	var (
		payload   []byte
		expiresAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM query_cache WHERE cache_key = ?`, key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}
	if expiresAt > 0 && expiresAt <= s.now().UTC().UnixMilli() {
		return nil, false, nil
	}
	return payload, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil || s.sqlDB == nil {
		return querycache.ErrStoreClosed
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("cache key is required")
	}
	now := s.now().UTC()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixMilli()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO query_cache (cache_key, payload, refreshed_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    payload = excluded.payload,
		    refreshed_at = excluded.refreshed_at,
		    expires_at = excluded.expires_at`,
		key, value, now.UnixMilli(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.sqlDB == nil {
		return querycache.ErrStoreClosed
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM query_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	if s == nil || s.sqlDB == nil {
		return querycache.ErrStoreClosed
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM query_cache WHERE substr(cache_key, 1, length(?)) = ?`, prefix, prefix,
	); err != nil {
		return fmt.Errorf("delete cache prefix: %w", err)
	}
	return nil
}

// DeleteExpired removes rows whose TTL has passed and reports how many.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, querycache.ErrStoreClosed
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM query_cache WHERE expires_at > 0 AND expires_at <= ?`, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired cache entries: %w", err)
	}
	return res.RowsAffected()
}

var _ querycache.Store = (*Store)(nil)
