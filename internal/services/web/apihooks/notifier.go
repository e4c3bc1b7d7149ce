package apihooks

import (
	"context"
	"log/slog"

	"github.com/louisbranch/frontpage/internal/services/web/platform/flash"
	"github.com/louisbranch/frontpage/internal/services/web/platform/toast"
)

// Toast is a localized notification shown once to the user.
type Toast = flash.Notice

// Catalog keys of the default toasts.
const (
	QueryFailedKey       = "core.toast.query_failed"
	MutationSucceededKey = "core.toast.mutation_succeeded"
	MutationFailedKey    = "core.toast.mutation_failed"
)

// SuccessToast builds a success toast for key.
func SuccessToast(key string) Toast {
	return flash.Success(key)
}

// ErrorToast builds an error toast for key.
func ErrorToast(key string) Toast {
	return flash.Error(key)
}

// Notifier displays toasts.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, t Toast) {
	f(ctx, t)
}

// RequestNotifier adds toasts to the request collector installed by
// toast.Middleware. Toasts raised outside a request are logged and dropped.
type RequestNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n RequestNotifier) Notify(ctx context.Context, t Toast) {
	if toast.Add(ctx, t) {
		return
	}
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "toast dropped outside request", "kind", string(t.Kind), "key", t.Key)
}
