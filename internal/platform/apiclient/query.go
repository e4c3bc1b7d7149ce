package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/frontpage/internal/platform/querycache"
	"github.com/louisbranch/frontpage/internal/platform/timeouts"
	"golang.org/x/sync/singleflight"
)

// QueryKey identifies a cached query. Keys are hierarchical: invalidating
// a key also invalidates every key it prefixes.
type QueryKey []string

// Key builds a QueryKey from its parts.
func Key(parts ...string) QueryKey {
	return QueryKey(parts)
}

// Hash returns the store key. Parts are escaped so "/" stays a separator.
func (k QueryKey) Hash() string {
	escaped := make([]string, len(k))
	for i, part := range k {
		escaped[i] = url.PathEscape(part)
	}
	return strings.Join(escaped, "/")
}

func (k QueryKey) String() string {
	return k.Hash()
}

// HasPrefix reports whether prefix names k or one of its ancestors.
func (k QueryKey) HasPrefix(prefix QueryKey) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// FetchFunc loads a query result.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// MutationFunc performs a write.
type MutationFunc[T any] func(ctx context.Context) (T, error)

type queryEntry struct {
	key       QueryKey
	value     any
	fetchedAt time.Time
}

// QueryClient caches query results for the life of the process. Fresh
// results are served from memory as the same value; an optional shared
// store lets several processes reuse encoded results.
type QueryClient struct {
	mu      sync.RWMutex
	entries map[string]*queryEntry

	// generation advances on every Invalidate.
	generation uint64

	store       querycache.Store
	group       singleflight.Group
	staleTime   time.Duration
	loadTimeout time.Duration
	retry       RetryPolicy
	logger      *slog.Logger
	now         func() time.Time
}

// QueryOption customizes a QueryClient.
type QueryOption func(*QueryClient)

// WithStore shares encoded results through store.
func WithStore(store querycache.Store) QueryOption {
	return func(qc *QueryClient) {
		qc.store = store
	}
}

// WithStaleTime sets how long a result stays fresh. Zero keeps results
// until they are invalidated.
func WithStaleTime(d time.Duration) QueryOption {
	return func(qc *QueryClient) {
		qc.staleTime = d
	}
}

// WithLoadTimeout caps one shared load, retries included. Zero disables the
// cap.
func WithLoadTimeout(d time.Duration) QueryOption {
	return func(qc *QueryClient) {
		qc.loadTimeout = d
	}
}

// WithRetry sets the retry policy for query fetches.
func WithRetry(policy RetryPolicy) QueryOption {
	return func(qc *QueryClient) {
		qc.retry = policy
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(logger *slog.Logger) QueryOption {
	return func(qc *QueryClient) {
		if logger != nil {
			qc.logger = logger
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) QueryOption {
	return func(qc *QueryClient) {
		if now != nil {
			qc.now = now
		}
	}
}

// NewQueryClient builds an empty query cache.
func NewQueryClient(opts ...QueryOption) *QueryClient {
	qc := &QueryClient{
		entries:     map[string]*queryEntry{},
		loadTimeout: timeouts.QueryLoad,
		retry:       RetryPolicy{MaxAttempts: 1},
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(qc)
	}
	return qc
}

// Fetch returns the cached result for key while it is fresh, and otherwise
// loads it with fetch. Concurrent callers for one key share a single load.
// The load is detached from any one caller: a caller whose ctx ends gets
// ctx.Err() while the others keep waiting. Failed loads are not cached, and
// a load that overlaps an Invalidate is returned but never cached.
func Fetch[T any](ctx context.Context, qc *QueryClient, key QueryKey, fetch FetchFunc[T]) (T, error) {
	var zero T
	hash := key.Hash()
	if value, ok := lookup[T](qc, hash); ok {
		return value, nil
	}

	gen := qc.currentGeneration()
	loadCtx := context.WithoutCancel(ctx)
	ch := qc.group.DoChan(strconv.FormatUint(gen, 10)+":"+hash, func() (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				result, err = nil, &PanicError{Op: "query " + hash, Value: r}
			}
		}()
		ctx := loadCtx
		if qc.loadTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, qc.loadTimeout)
			defer cancel()
		}
		if value, ok := lookup[T](qc, hash); ok {
			return value, nil
		}
		if value, ok := loadShared[T](ctx, qc, hash); ok {
			qc.putIfCurrent(gen, key, value)
			return value, nil
		}
		value, err := retry(ctx, qc.retry, func(ctx context.Context) (T, error) {
			return fetch(ctx)
		})
		if err != nil {
			return nil, err
		}
		if qc.putIfCurrent(gen, key, value) {
			storeShared(ctx, qc, hash, value)
			if qc.currentGeneration() != gen {
				qc.dropShared(ctx, hash)
			}
		}
		return value, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}
	value, ok := res.Val.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T is not %T", hash, res.Val, zero)
	}
	return value, nil
}

// GetQueryData returns the fresh cached value for key, if any.
func GetQueryData[T any](qc *QueryClient, key QueryKey) (T, bool) {
	return lookup[T](qc, key.Hash())
}

// SetQueryData replaces the cached value for key.
func SetQueryData[T any](ctx context.Context, qc *QueryClient, key QueryKey, value T) {
	qc.put(key, value)
	storeShared(ctx, qc, key.Hash(), value)
}

// Invalidate drops every cached result whose key starts with prefix, locally
// and in the shared store. An empty prefix clears everything.
func (qc *QueryClient) Invalidate(ctx context.Context, prefix QueryKey) error {
	qc.mu.Lock()
	qc.generation++
	for hash, entry := range qc.entries {
		if entry.key.HasPrefix(prefix) {
			delete(qc.entries, hash)
		}
	}
	qc.mu.Unlock()

	if qc.store == nil {
		return nil
	}
	hash := prefix.Hash()
	if err := qc.store.Delete(ctx, hash); err != nil {
		return fmt.Errorf("invalidate %s: %w", hash, err)
	}
	storePrefix := hash + "/"
	if len(prefix) == 0 {
		storePrefix = ""
	}
	if err := qc.store.DeletePrefix(ctx, storePrefix); err != nil {
		return fmt.Errorf("invalidate %s: %w", hash, err)
	}
	return nil
}

// Len returns the number of locally cached results.
func (qc *QueryClient) Len() int {
	qc.mu.RLock()
	defer qc.mu.RUnlock()
	return len(qc.entries)
}

func (qc *QueryClient) put(key QueryKey, value any) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries[key.Hash()] = &queryEntry{
		key:       append(QueryKey(nil), key...),
		value:     value,
		fetchedAt: qc.now(),
	}
}

// putIfCurrent caches value only when no Invalidate ran since the load
// that produced it started.
func (qc *QueryClient) putIfCurrent(gen uint64, key QueryKey, value any) bool {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	if qc.generation != gen {
		return false
	}
	qc.entries[key.Hash()] = &queryEntry{
		key:       append(QueryKey(nil), key...),
		value:     value,
		fetchedAt: qc.now(),
	}
	return true
}

func (qc *QueryClient) currentGeneration() uint64 {
	qc.mu.RLock()
	defer qc.mu.RUnlock()
	return qc.generation
}

func (qc *QueryClient) dropShared(ctx context.Context, hash string) {
	if err := qc.store.Delete(ctx, hash); err != nil {
		qc.logger.WarnContext(ctx, "query cache delete failed", "key", hash, "error", err)
	}
}

func (qc *QueryClient) fresh(entry *queryEntry) bool {
	return qc.staleTime <= 0 || qc.now().Sub(entry.fetchedAt) < qc.staleTime
}

func lookup[T any](qc *QueryClient, hash string) (T, bool) {
	qc.mu.RLock()
	entry, ok := qc.entries[hash]
	qc.mu.RUnlock()
	var zero T
	if !ok || !qc.fresh(entry) {
		return zero, false
	}
	value, ok := entry.value.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

func loadShared[T any](ctx context.Context, qc *QueryClient, hash string) (T, bool) {
	var value T
	if qc.store == nil {
		return value, false
	}
	data, ok, err := qc.store.Get(ctx, hash)
	if err != nil {
		qc.logger.WarnContext(ctx, "query cache read failed", "key", hash, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		qc.logger.WarnContext(ctx, "query cache decode failed", "key", hash, "error", err)
		return value, false
	}
	return value, true
}

func storeShared(ctx context.Context, qc *QueryClient, hash string, value any) {
	if qc.store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		qc.logger.WarnContext(ctx, "query cache encode failed", "key", hash, "error", err)
		return
	}
	if err := qc.store.Set(ctx, hash, data, qc.staleTime); err != nil {
		qc.logger.WarnContext(ctx, "query cache write failed", "key", hash, "error", err)
	}
}
