package apihooks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/louisbranch/frontpage/internal/platform/apiclient"
	apperrors "github.com/louisbranch/frontpage/internal/services/web/platform/errors"
)

// QueryKey identifies a cached query.
type QueryKey = apiclient.QueryKey

// Key builds a QueryKey from its parts.
func Key(parts ...string) QueryKey {
	return apiclient.Key(parts...)
}

// Facade binds the shared query client to a notifier. It holds no request
// state and is safe for concurrent use.
type Facade struct {
	client            *apiclient.QueryClient
	notifier          Notifier
	notifyQueryErrors bool
	logger            *slog.Logger
}

// Option customizes a Facade.
type Option func(*Facade)

// WithNotifier sets the toast sink. Defaults to RequestNotifier.
func WithNotifier(n Notifier) Option {
	return func(f *Facade) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithQueryErrorToasts toggles the error toast on failed queries. On by
// default.
func WithQueryErrorToasts(enabled bool) Option {
	return func(f *Facade) {
		f.notifyQueryErrors = enabled
	}
}

// WithLogger sets the logger for failed operations.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New builds a facade over client. A nil client gets a fresh in-memory one.
func New(client *apiclient.QueryClient, opts ...Option) *Facade {
	f := &Facade{
		client:            client,
		notifyQueryErrors: true,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = apiclient.NewQueryClient(apiclient.WithLogger(f.logger))
	}
	if f.notifier == nil {
		f.notifier = RequestNotifier{Logger: f.logger}
	}
	return f
}

// Client returns the shared query cache for manual invalidation.
func (f *Facade) Client() *apiclient.QueryClient {
	return f.client
}

// Query returns the cached result for key, calling fetch on a miss. While
// the entry is fresh every caller receives the same value. A failure is
// reported as one error toast and returned.
func Query[T any](ctx context.Context, f *Facade, key QueryKey, fetch apiclient.FetchFunc[T]) (T, error) {
	value, err := apiclient.Fetch(ctx, f.client, key, fetch)
	if err != nil {
		f.logger.WarnContext(ctx, "query failed", "key", key.String(), "error", err)
		if f.notifyQueryErrors {
			f.notifier.Notify(ctx, ErrorToast(toastKey(apperrors.LocalizationKey(err), QueryFailedKey)))
		}
		return value, err
	}
	return value, nil
}

// MutationCallbacks reports the outcome of a mutation. Exactly one of
// OnSuccess and OnError runs, once. The returned toast is shown; a nil
// callback shows the default toast, and a toast with an empty key shows
// nothing.
type MutationCallbacks[T any] struct {
	OnSuccess func(T) Toast
	OnError   func(error) Toast
	// Invalidate lists the queries a successful mutation makes stale.
	Invalidate []QueryKey
}

// Mutate runs action once. A panic inside action is recovered and treated
// as a failure; it never reaches the caller.
func Mutate[T any](ctx context.Context, f *Facade, action apiclient.MutationFunc[T], callbacks MutationCallbacks[T]) (T, error) {
	value, err := apiclient.Mutate(ctx, f.client, action, apiclient.MutationOptions{Invalidate: callbacks.Invalidate})
	if err != nil {
		f.logger.WarnContext(ctx, "mutation failed", "error", err)
		t := ErrorToast(toastKey(apperrors.LocalizationKey(err), MutationFailedKey))
		if callbacks.OnError != nil {
			t = callbacks.OnError(err)
		}
		f.notify(ctx, t)
		return value, err
	}
	t := SuccessToast(MutationSucceededKey)
	if callbacks.OnSuccess != nil {
		t = callbacks.OnSuccess(value)
	}
	f.notify(ctx, t)
	return value, nil
}

// Notify shows t through the facade notifier. A toast without key is
// dropped.
func (f *Facade) Notify(ctx context.Context, t Toast) {
	f.notify(ctx, t)
}

func (f *Facade) notify(ctx context.Context, t Toast) {
	if strings.TrimSpace(t.Key) == "" {
		return
	}
	f.notifier.Notify(ctx, t)
}

func toastKey(key, fallback string) string {
	if key = strings.TrimSpace(key); key != "" {
		return key
	}
	return fallback
}
