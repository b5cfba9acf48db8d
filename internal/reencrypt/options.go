package reencrypt

import (
	"context"
	"time"

	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
	"github.com/imamik/bucketcrypt/internal/util/retry"
)

// Store is the subset of the S3 client a run needs.
type Store interface {
	ListPage(ctx context.Context, bucket string, token *string, maxKeys int32) (*objstore.Page, error)
	CopyInPlace(ctx context.Context, bucket, key string, enc objstore.Encryption) error
}

// RetryPolicy bounds retries of transient S3 failures. MaxRetries of zero
// makes every failure fatal.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Option configures a Lister, Applier or Runner.
type Option func(*options)

type options struct {
	observer    observe.Observer
	retry       RetryPolicy
	concurrency int
}

func newOptions(opts []Option) options {
	o := options{
		observer:    observe.Discard(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithObserver sets the observer receiving run events.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithRetryPolicy enables retries of transient failures.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *options) {
		o.retry = p
	}
}

// WithConcurrency sets the number of copies in flight. Values below one
// are treated as one.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// call runs op under the retry policy. Only transient errors are retried;
// anything else is returned unchanged on first failure.
func (o *options) call(ctx context.Context, phase, key string, op func() error) error {
	return retry.WithExponentialBackoff(ctx, op,
		retry.WithMaxRetries(o.retry.MaxRetries),
		retry.WithInitialDelay(o.retry.InitialDelay),
		retry.WithMaxDelay(o.retry.MaxDelay),
		retry.WithRetryIf(objstore.IsTransient),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			observe.Retrying(o.observer, phase, key, attempt, delay, err)
		}),
	)
}
