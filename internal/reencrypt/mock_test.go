package reencrypt

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
)

// MockS3API is a function-field mock of objstore.API that records every
// request it receives.
type MockS3API struct {
	ListObjectsV2Func func(ctx context.Context, params *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	CopyObjectFunc    func(ctx context.Context, params *s3.CopyObjectInput) (*s3.CopyObjectOutput, error)

	mu        sync.Mutex
	ListCalls []*s3.ListObjectsV2Input
	CopyCalls []*s3.CopyObjectInput
}

func (m *MockS3API) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, params)
	m.mu.Unlock()
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params)
	}
	return &s3.ListObjectsV2Output{}, nil
}

func (m *MockS3API) CopyObject(ctx context.Context, params *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	m.mu.Lock()
	m.CopyCalls = append(m.CopyCalls, params)
	m.mu.Unlock()
	if m.CopyObjectFunc != nil {
		return m.CopyObjectFunc(ctx, params)
	}
	return &s3.CopyObjectOutput{}, nil
}

func (m *MockS3API) copiedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.CopyCalls))
	for _, in := range m.CopyCalls {
		keys = append(keys, aws.ToString(in.Key))
	}
	return keys
}

// newMockStore returns a client backed by api.
func newMockStore(api *MockS3API) *objstore.Client {
	return objstore.NewFromAPI(api)
}

// objectKeys returns n keys in listing order.
func objectKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("obj-%04d", i+1)
	}
	return keys
}

// listFromKeys serves keys as a paginated listing honouring MaxKeys. The
// continuation token is the offset of the next page.
func listFromKeys(keys []string) func(context.Context, *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	return func(_ context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
		offset := 0
		if in.ContinuationToken != nil {
			n, err := strconv.Atoi(*in.ContinuationToken)
			if err != nil {
				return nil, err
			}
			offset = n
		}
		end := min(offset+int(aws.ToInt32(in.MaxKeys)), len(keys))

		out := &s3.ListObjectsV2Output{KeyCount: aws.Int32(int32(end - offset))}
		for _, k := range keys[offset:end] {
			out.Contents = append(out.Contents, types.Object{
				Key:  aws.String(k),
				Size: aws.Int64(10),
			})
		}
		if end < len(keys) {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = aws.String(strconv.Itoa(end))
		}
		return out, nil
	}
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

// eventLog is an observe.Observer that records events.
type eventLog struct {
	mu     sync.Mutex
	events []observe.Event
}

func (l *eventLog) Event(e observe.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) Progress(phase string, current, total int) {
	l.Event(observe.Event{Type: observe.EventProgress, Phase: phase, Current: current, Total: total})
}

func (l *eventLog) WithFields(map[string]string) observe.Observer { return l }

func (l *eventLog) ofType(t observe.EventType) []observe.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []observe.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
