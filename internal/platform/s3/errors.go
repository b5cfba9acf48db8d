package s3

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrAccessDenied indicates the credentials lack permission.
	ErrAccessDenied = errors.New("s3: access denied")

	// ErrInvalidCredentials indicates the credentials were rejected.
	ErrInvalidCredentials = errors.New("s3: invalid credentials")

	// ErrBucketNotFound indicates the bucket does not exist.
	ErrBucketNotFound = errors.New("s3: bucket not found")

	// ErrObjectNotFound indicates the object does not exist, typically
	// because it was deleted after it was listed.
	ErrObjectNotFound = errors.New("s3: object not found")

	// ErrThrottled indicates the service asked the client to slow down.
	ErrThrottled = errors.New("s3: request throttled")

	// ErrServiceUnavailable indicates a 5xx-class failure.
	ErrServiceUnavailable = errors.New("s3: service unavailable")
)

// Error wraps an SDK error with the operation and object it concerns.
type Error struct {
	Op     string
	Bucket string
	Key    string

	// Kind is one of the sentinel errors above, or nil when the failure
	// could not be classified.
	Kind error
	Err  error
}

func (e *Error) Error() string {
	target := e.Bucket
	if e.Key != "" {
		target = e.Bucket + "/" + e.Key
	}
	return fmt.Sprintf("s3.%s %s: %v", e.Op, target, e.Err)
}

// Unwrap exposes both the classification and the underlying SDK error.
func (e *Error) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

func newError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Kind:   classify(op, err),
		Err:    err,
	}
}

var codeKinds = map[string]error{
	"AccessDenied":          ErrAccessDenied,
	"AllAccessDisabled":     ErrAccessDenied,
	"AccountProblem":        ErrAccessDenied,
	"InvalidAccessKeyId":    ErrInvalidCredentials,
	"SignatureDoesNotMatch": ErrInvalidCredentials,
	"ExpiredToken":          ErrInvalidCredentials,
	"InvalidToken":          ErrInvalidCredentials,
	"RequestTimeTooSkewed":  ErrInvalidCredentials,
	"NoSuchBucket":          ErrBucketNotFound,
	"NoSuchKey":             ErrObjectNotFound,
	"SlowDown":              ErrThrottled,
	"Throttling":            ErrThrottled,
	"ThrottlingException":   ErrThrottled,
	"RequestLimitExceeded":  ErrThrottled,
	"TooManyRequests":       ErrThrottled,
	"InternalError":         ErrServiceUnavailable,
	"ServiceUnavailable":    ErrServiceUnavailable,
	"RequestTimeout":        ErrServiceUnavailable,
}

// classify maps an SDK error to one of the sentinels.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	// Typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return ErrObjectNotFound
	}

	// Fall back to API error codes for S3-compatible services
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if kind, ok := codeKinds[apiErr.ErrorCode()]; ok {
			return kind
		}
	}

	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		switch code := statusErr.HTTPStatusCode(); {
		case code == 403:
			return ErrAccessDenied
		case code == 404 && op == "CopyObject":
			return ErrObjectNotFound
		case code == 404:
			return ErrBucketNotFound
		case code == 429:
			return ErrThrottled
		case code >= 500:
			return ErrServiceUnavailable
		}
	}

	return nil
}

// IsTransient reports whether err is worth retrying: throttling, 5xx
// responses, and network timeouts. Context cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrThrottled) || errors.Is(err, ErrServiceUnavailable) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsNotFound reports whether err means the bucket or the object is gone.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound) || errors.Is(err, ErrObjectNotFound)
}

// IsAuthError reports whether err is an authentication or authorization
// failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrInvalidCredentials)
}
