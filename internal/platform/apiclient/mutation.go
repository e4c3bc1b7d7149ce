package apiclient

import (
	"context"
	"errors"
)

// MutationOptions lists the queries a successful mutation makes stale.
type MutationOptions struct {
	Invalidate []QueryKey
}

// Mutate runs action once. A panic inside action is returned as
// *PanicError. On success every key in opts.Invalidate is invalidated;
// invalidation failures are logged and do not fail the mutation.
func Mutate[T any](ctx context.Context, qc *QueryClient, action MutationFunc[T], opts MutationOptions) (value T, err error) {
	value, err = runRecovered(ctx, action)
	if err != nil {
		var zero T
		return zero, err
	}
	var invalidateErrs []error
	for _, key := range opts.Invalidate {
		if invErr := qc.Invalidate(ctx, key); invErr != nil {
			invalidateErrs = append(invalidateErrs, invErr)
		}
	}
	if len(invalidateErrs) > 0 {
		qc.logger.WarnContext(ctx, "mutation invalidation failed", "error", errors.Join(invalidateErrs...))
	}
	return value, nil
}

func runRecovered[T any](ctx context.Context, action MutationFunc[T]) (value T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var zero T
			value = zero
			err = &PanicError{Value: recovered}
		}
	}()
	return action(ctx)
}
