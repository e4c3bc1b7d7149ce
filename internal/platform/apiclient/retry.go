package apiclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds retries of transient query failures. Mutations are
// never retried.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	expBackoff := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		expBackoff.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		expBackoff.MaxInterval = p.MaxInterval
	}
	return expBackoff
}

// retry runs op until it succeeds, fails with a non-transient error, or
// uses up the policy's attempts.
func retry[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	if policy.MaxAttempts <= 1 {
		return op(ctx)
	}
	return backoff.Retry(ctx, func() (T, error) {
		value, err := op(ctx)
		if err != nil && !IsTransient(err) {
			return value, backoff.Permanent(err)
		}
		return value, err
	}, backoff.WithBackOff(policy.backOff()), backoff.WithMaxTries(uint(policy.MaxAttempts)))
}
