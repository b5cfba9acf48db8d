package config

import "time"

// Defaults applied when neither the config file nor a flag sets a value.
const (
	// DefaultPageSize is the number of keys requested per listing call.
	DefaultPageSize = 100

	// MaxPageSize is the largest MaxKeys value S3 honours for ListObjectsV2.
	MaxPageSize = 1000

	// DefaultConcurrency keeps the applier strictly sequential.
	DefaultConcurrency = 1

	// DefaultCipher is the server-side encryption applied when none is given.
	DefaultCipher = CipherAES256
)

// Backoff bounds for retried list and copy calls.
const (
	RetryInitialDelay = 500 * time.Millisecond
	RetryMaxDelay     = 20 * time.Second
)
