// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// retries, initial delay, and maximum delay. Callers decide which errors are
// worth retrying with [WithRetryIf].
// bucketcrypt uses it around S3 list and copy calls when --max-retries is
// set; with zero retries the operation runs exactly once.
package retry
