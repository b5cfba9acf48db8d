package reencrypt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
	"github.com/imamik/bucketcrypt/internal/util/async"
)

// RunError reports a run that stopped before every object was re-encrypted.
// Processed objects already carry the new encryption; the rest were not
// touched by this run.
type RunError struct {
	Processed int
	Total     int
	Key       string // empty when the run was interrupted between copies
	Err       error
}

func (e *RunError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("interrupted after re-encrypting %d of %d objects: %v", e.Processed, e.Total, e.Err)
	}
	return fmt.Sprintf("failed to re-encrypt %s after %d of %d objects: %v", e.Key, e.Processed, e.Total, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Result describes the work an Applier completed.
type Result struct {
	Processed int
	Bytes     int64
}

// progressSteps is how many Progress milestones a run reports.
const progressSteps = 10

// Applier copies each object onto itself with the configured encryption.
type Applier struct {
	store  Store
	bucket string
	enc    objstore.Encryption
	opts   options
}

// NewApplier creates an Applier for bucket.
func NewApplier(store Store, bucket string, enc objstore.Encryption, opts ...Option) *Applier {
	return &Applier{
		store:  store,
		bucket: bucket,
		enc:    enc,
		opts:   newOptions(opts),
	}
}

// Apply issues one copy-in-place request per object. With concurrency one
// the copies run in order, each awaited before the next. The first failure
// stops the run: no further copy is started and a *RunError is returned.
// Copies already in flight on other workers are allowed to finish. A copy
// cut short by cancellation is reported as an interruption, not as a
// failure of that object.
func (a *Applier) Apply(ctx context.Context, objects []objstore.Object) (Result, error) {
	total := len(objects)

	var (
		mu        sync.Mutex
		res       Result
		failedKey string
		failure   error
		step      int
	)

	err := async.ForEach(ctx, total, a.opts.concurrency, func(ctx context.Context, i int) error {
		obj := objects[i]
		start := time.Now()

		err := a.opts.call(ctx, "encrypt", obj.Key, func() error {
			return a.store.CopyInPlace(ctx, a.bucket, obj.Key, a.enc)
		})

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if failure == nil {
				failure = err
				if ctx.Err() == nil {
					failedKey = obj.Key
					observe.ObjectFailed(a.opts.observer, res.Processed, total, obj.Key, err)
				}
			}
			return err
		}
		res.Processed++
		res.Bytes += obj.Size
		observe.ObjectEncrypted(a.opts.observer, res.Processed, total, obj.Key, obj.Size, time.Since(start))
		if s := res.Processed * progressSteps / total; s > step {
			step = s
			a.opts.observer.Progress("encrypt", res.Processed, total)
		}
		return nil
	})

	if err == nil {
		return res, nil
	}
	if failure != nil {
		err = failure
	}
	return res, &RunError{
		Processed: res.Processed,
		Total:     total,
		Key:       failedKey,
		Err:       err,
	}
}
