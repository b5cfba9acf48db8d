package reencrypt

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/imamik/bucketcrypt/internal/config"
	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
)

// Summary describes a finished run.
type Summary struct {
	Bucket   string
	Cipher   config.Cipher
	Pages    int
	Objects  int
	Bytes    int64
	Duration time.Duration
}

// Runner lists a bucket and then re-encrypts every listed object.
type Runner struct {
	store Store
	cfg   config.Config
	opts  []Option
}

// NewRunner creates a Runner for cfg. Retry and concurrency settings are
// taken from cfg; opts are applied after them.
func NewRunner(store Store, cfg config.Config, opts ...Option) *Runner {
	base := []Option{
		WithConcurrency(cfg.Concurrency),
		WithRetryPolicy(PolicyFromConfig(&cfg)),
	}
	return &Runner{
		store: store,
		cfg:   cfg,
		opts:  append(base, opts...),
	}
}

// PolicyFromConfig returns the retry policy for cfg.
func PolicyFromConfig(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxRetries:   cfg.MaxRetries,
		InitialDelay: config.RetryInitialDelay,
		MaxDelay:     config.RetryMaxDelay,
	}
}

// EncryptionFromConfig maps the configured cipher onto copy parameters.
func EncryptionFromConfig(cfg *config.Config) objstore.Encryption {
	return objstore.Encryption{
		Algorithm: string(cfg.Cipher),
		KMSKeyID:  cfg.KMSKeyID,
	}
}

// Run validates the configuration, lists the whole bucket and then applies
// the encryption to every object. Configuration errors are returned before
// any request is made. A listing failure means no object is copied.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	o := newOptions(r.opts)
	obs := o.observer.WithFields(map[string]string{"bucket": r.cfg.Bucket})
	opts := append(slices.Clone(r.opts), WithObserver(obs))

	start := time.Now()
	summary := &Summary{Bucket: r.cfg.Bucket, Cipher: r.cfg.Cipher}
	observe.RunStarted(obs, r.cfg.Bucket, r.cfg.Cipher.String())

	lister := NewLister(r.store, r.cfg.Bucket, r.cfg.PageSize, opts...)
	objects, pages, err := lister.list(ctx)
	summary.Pages = pages
	if err != nil {
		summary.Duration = time.Since(start)
		observe.RunFailed(obs, 0, 0, summary.Duration, err)
		return summary, err
	}

	applier := NewApplier(r.store, r.cfg.Bucket, EncryptionFromConfig(&r.cfg), opts...)
	res, err := applier.Apply(ctx, objects)
	summary.Objects = res.Processed
	summary.Bytes = res.Bytes
	summary.Duration = time.Since(start)
	if err != nil {
		observe.RunFailed(obs, res.Processed, len(objects), summary.Duration, err)
		return summary, err
	}

	observe.RunCompleted(obs, res.Processed, res.Bytes, summary.Duration)
	return summary, nil
}

// Inventory summarises what a run would touch without modifying anything.
type Inventory struct {
	Bucket         string
	Pages          int
	Objects        int
	Bytes          int64
	StorageClasses map[string]int
}

// Survey lists the bucket and tallies the objects a run would re-encrypt.
func Survey(ctx context.Context, store Store, bucket string, pageSize int, opts ...Option) (*Inventory, error) {
	lister := NewLister(store, bucket, pageSize, opts...)
	objects, pages, err := lister.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to survey bucket %s: %w", bucket, err)
	}

	inv := &Inventory{
		Bucket:         bucket,
		Pages:          pages,
		Objects:        len(objects),
		StorageClasses: make(map[string]int),
	}
	for _, obj := range objects {
		inv.Bytes += obj.Size
		class := obj.StorageClass
		if class == "" {
			class = "STANDARD"
		}
		inv.StorageClasses[class]++
	}
	return inv, nil
}
