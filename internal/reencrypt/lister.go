package reencrypt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
)

// ErrInvalidPageSize is returned when the listing page size is not positive.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Paginator walks a bucket listing one page at a time. The continuation
// token lives only in the paginator and is never persisted.
type Paginator struct {
	store    Store
	bucket   string
	pageSize int32
	opts     *options

	token    *string
	started  bool
	pages    int
	returned int
}

// HasMorePages reports whether NextPage should be called again. It is true
// before the first page and afterwards only while the service returned a
// continuation token.
func (p *Paginator) HasMorePages() bool {
	return !p.started || p.token != nil
}

// Pages returns the number of pages retrieved so far.
func (p *Paginator) Pages() int {
	return p.pages
}

// NextPage retrieves the next page. On failure the cursor is left where it
// was so the caller may stop or try again.
func (p *Paginator) NextPage(ctx context.Context) ([]objstore.Object, error) {
	if !p.HasMorePages() {
		return nil, errors.New("no more pages")
	}

	var page *objstore.Page
	err := p.opts.call(ctx, "list", "", func() error {
		var err error
		page, err = p.store.ListPage(ctx, p.bucket, p.token, p.pageSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.started = true
	p.token = page.NextContinuationToken
	p.pages++

	var bytes int64
	for _, obj := range page.Objects {
		bytes += obj.Size
	}
	first := p.returned + 1
	p.returned += len(page.Objects)
	observe.ListPage(p.opts.observer, p.pages, first, p.returned, bytes)

	return page.Objects, nil
}

// Lister enumerates every object in a bucket.
type Lister struct {
	store    Store
	bucket   string
	pageSize int
	opts     options
}

// NewLister creates a Lister requesting pageSize keys per call.
func NewLister(store Store, bucket string, pageSize int, opts ...Option) *Lister {
	return &Lister{
		store:    store,
		bucket:   bucket,
		pageSize: pageSize,
		opts:     newOptions(opts),
	}
}

// Paginator returns a fresh paginator over the bucket.
func (l *Lister) Paginator() (*Paginator, error) {
	if l.pageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, l.pageSize)
	}
	return &Paginator{
		store:    l.store,
		bucket:   l.bucket,
		pageSize: int32(min(l.pageSize, math.MaxInt32)),
		opts:     &l.opts,
	}, nil
}

// List returns every object in the bucket in service order. A failing page
// aborts the listing and no partial result is returned.
func (l *Lister) List(ctx context.Context) ([]objstore.Object, error) {
	objects, _, err := l.list(ctx)
	return objects, err
}

func (l *Lister) list(ctx context.Context) ([]objstore.Object, int, error) {
	p, err := l.Paginator()
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	var objects []objstore.Object
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, p.Pages(), fmt.Errorf("failed to list page %d of bucket %s: %w", p.Pages()+1, l.bucket, err)
		}
		objects = append(objects, page...)
	}

	observe.ListCompleted(l.opts.observer, p.Pages(), len(objects), time.Since(start))
	return objects, p.Pages(), nil
}
