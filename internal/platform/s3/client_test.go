package s3

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestCopySource(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		key    string
		want   string
	}{
		{"plain key", "b", "file.txt", "b/file.txt"},
		{"nested key keeps separators", "b", "a/b/c.txt", "b/a/b/c.txt"},
		{"space", "b", "my file.txt", "b/my%20file.txt"},
		{"unicode", "b", "fotos/größe.jpg", "b/fotos/gr%C3%B6%C3%9Fe.jpg"},
		{"question mark", "b", "what?.txt", "b/what%3F.txt"},
		{"trailing slash", "b", "dir/", "b/dir/"},
		{"plus sign", "bkt", "a+b.txt", "bkt/a%2Bb.txt"},
		{"plus and space", "bkt", "c++/my notes+.md", "bkt/c%2B%2B/my%20notes%2B.md"},
		{"hash", "b", "issue#1.txt", "b/issue%231.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CopySource(tt.bucket, tt.key)
			if got != tt.want {
				t.Errorf("CopySource(%q, %q) = %q, want %q", tt.bucket, tt.key, got, tt.want)
			}
		})
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		op   string
		err  error
		want error
	}{
		{"nil error", "ListObjectsV2", nil, nil},
		{"typed no such bucket", "ListObjectsV2", &types.NoSuchBucket{}, ErrBucketNotFound},
		{"typed no such key", "CopyObject", &types.NoSuchKey{}, ErrObjectNotFound},
		{"access denied code", "ListObjectsV2", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrAccessDenied},
		{"invalid key id", "CopyObject", &smithy.GenericAPIError{Code: "InvalidAccessKeyId"}, ErrInvalidCredentials},
		{"slow down", "CopyObject", &smithy.GenericAPIError{Code: "SlowDown"}, ErrThrottled},
		{"internal error", "CopyObject", &smithy.GenericAPIError{Code: "InternalError"}, ErrServiceUnavailable},
		{"unknown code", "CopyObject", &smithy.GenericAPIError{Code: "Weird"}, nil},
		{"wrapped code", "CopyObject", fmt.Errorf("op: %w", &smithy.GenericAPIError{Code: "NoSuchKey"}), ErrObjectNotFound},
		{"plain error", "CopyObject", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.op, tt.err)
			if got != tt.want {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"throttled", newError("CopyObject", "b", "k", &smithy.GenericAPIError{Code: "SlowDown"}), true},
		{"service unavailable", newError("CopyObject", "b", "k", &smithy.GenericAPIError{Code: "ServiceUnavailable"}), true},
		{"access denied", newError("CopyObject", "b", "k", &smithy.GenericAPIError{Code: "AccessDenied"}), false},
		{"missing object", newError("CopyObject", "b", "k", &types.NoSuchKey{}), false},
		{"network timeout", newError("CopyObject", "b", "k", timeoutError{}), true},
		{"context canceled", newError("CopyObject", "b", "k", context.Canceled), false},
		{"deadline exceeded", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), false},
		{"unclassified", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := newError("CopyObject", "b", "k", errors.New("boom"))
	if got := err.Error(); got != "s3.CopyObject b/k: boom" {
		t.Errorf("unexpected message %q", got)
	}

	err = newError("ListObjectsV2", "b", "", errors.New("boom"))
	if got := err.Error(); got != "s3.ListObjectsV2 b: boom" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIsNotFoundAndAuth(t *testing.T) {
	if !IsNotFound(newError("CopyObject", "b", "k", &types.NoSuchKey{})) {
		t.Error("expected NoSuchKey to be not found")
	}
	if !IsNotFound(newError("ListObjectsV2", "b", "", &types.NoSuchBucket{})) {
		t.Error("expected NoSuchBucket to be not found")
	}
	if !IsAuthError(newError("ListObjectsV2", "b", "", &smithy.GenericAPIError{Code: "ExpiredToken"})) {
		t.Error("expected ExpiredToken to be an auth error")
	}
	if IsAuthError(errors.New("boom")) {
		t.Error("unexpected auth error for plain error")
	}
}
