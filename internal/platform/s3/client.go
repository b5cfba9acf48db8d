package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// API is the subset of the SDK client used here. *s3.Client satisfies it.
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// Options configures NewClient.
type Options struct {
	Region string

	// AccessKeyID and SecretAccessKey select static credentials. When both
	// are empty the SDK default credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides the S3 endpoint for S3-compatible services.
	Endpoint  string
	PathStyle bool

	// HTTPClient replaces the SDK's default HTTP client when set.
	HTTPClient *http.Client
}

// Client lists and re-encrypts objects.
type Client struct {
	api API
}

// Object describes one listed object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	StorageClass string
}

// Page is one ListObjectsV2 response. NextContinuationToken is nil on the
// final page.
type Page struct {
	Objects               []Object
	NextContinuationToken *string
}

// Encryption is the server-side encryption attached to a copy.
type Encryption struct {
	// Algorithm is the x-amz-server-side-encryption value, e.g. "AES256".
	Algorithm string
	// KMSKeyID is only sent for KMS algorithms.
	KMSKeyID string
}

// NewClient creates a client for the given region and credentials.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if opts.AccessKeyID != "" || opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	if opts.HTTPClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(opts.HTTPClient))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})

	return &Client{api: client}, nil
}

// NewFromAPI wraps an existing API implementation.
func NewFromAPI(api API) *Client {
	return &Client{api: api}
}

// ListPage fetches one page of objects. A nil token requests the first page.
func (c *Client) ListPage(ctx context.Context, bucket string, token *string, maxKeys int32) (*Page, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(maxKeys),
	}
	if token != nil {
		input.ContinuationToken = token
	}

	out, err := c.api.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, newError("ListObjectsV2", bucket, "", err)
	}

	page := &Page{Objects: make([]Object, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, Object{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
			StorageClass: string(obj.StorageClass),
		})
	}
	if next := aws.ToString(out.NextContinuationToken); next != "" {
		page.NextContinuationToken = aws.String(next)
	}
	return page, nil
}

// CopyInPlace copies bucket/key onto itself with the given encryption.
// Object metadata is preserved.
func (c *Client) CopyInPlace(ctx context.Context, bucket, key string, enc Encryption) error {
	input := &s3.CopyObjectInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(key),
		CopySource:           aws.String(CopySource(bucket, key)),
		MetadataDirective:    types.MetadataDirectiveCopy,
		ServerSideEncryption: types.ServerSideEncryption(enc.Algorithm),
	}
	if enc.KMSKeyID != "" && isKMSAlgorithm(enc.Algorithm) {
		input.SSEKMSKeyId = aws.String(enc.KMSKeyID)
	}

	if _, err := c.api.CopyObject(ctx, input); err != nil {
		return newError("CopyObject", bucket, key, err)
	}
	return nil
}

// CopySource builds the x-amz-copy-source value for bucket/key. Each path
// segment of the key is URL-escaped; separators are kept. S3 form-decodes
// the header, so a literal "+" must be sent as %2B or it reads as a space.
func CopySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(url.PathEscape(s), "+", "%2B")
	}
	return bucket + "/" + strings.Join(segments, "/")
}

func isKMSAlgorithm(algorithm string) bool {
	switch types.ServerSideEncryption(algorithm) {
	case types.ServerSideEncryptionAwsKms, types.ServerSideEncryptionAwsKmsDsse:
		return true
	}
	return false
}
