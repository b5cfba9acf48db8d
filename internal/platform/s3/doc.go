// Package s3 wraps the AWS SDK S3 client with the two calls bucketcrypt
// needs: one page of ListObjectsV2 and a copy-in-place CopyObject that sets
// server-side encryption.
//
// Errors returned by the client are [*Error] values that carry the
// operation, bucket, and key, and match the sentinels in this package
// (ErrAccessDenied, ErrBucketNotFound, ...) through errors.Is. [IsTransient]
// tells throttling and 5xx failures apart from permanent ones.
//
// The SDK's own retryer is disabled. Retrying is the caller's decision.
package s3
