// Package retry wraps transient operations, network fetches mostly, in
// exponential backoff with jitter.
package retry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy tunes the backoff schedule.
type Policy struct {
	MaxRetries uint
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultPolicy retries three times starting at 500ms, capped at 10s.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, BaseDelay: 500 * time.Millisecond, MaxDelay: 10 * time.Second}
}

func (p Policy) backoff(ctx context.Context) backoff.BackOff {
	if p.MaxRetries == 0 && p.BaseDelay == 0 {
		p = DefaultPolicy()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.MaxRetries)), ctx)
}

// Do runs op until it succeeds, returns a permanent error, or the
// retry budget runs out. Context cancellation stops the schedule.
func Do(ctx context.Context, p Policy, op func() error) error {
	return backoff.Retry(op, p.backoff(ctx))
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(op, p.backoff(ctx))
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// HTTPStatus classifies an HTTP response code: 429 and 5xx are
// transient, every other non-2xx is permanent. err takes priority and
// is always treated as transient (network failures tend to clear).
func HTTPStatus(status int, err error) error {
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}
	statusErr := errors.New(http.StatusText(status))
	if status == http.StatusTooManyRequests || status >= 500 {
		return statusErr
	}
	return backoff.Permanent(statusErr)
}
