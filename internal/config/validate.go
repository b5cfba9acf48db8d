package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequired is returned when bucket or region is not set.
	ErrMissingRequired = errors.New("missing required configuration")

	// ErrInvalidConfig is returned for values outside their accepted range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Validate checks the configuration and returns the first problem found.
// Missing required fields are reported together and wrap ErrMissingRequired;
// every other problem wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "bucket")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	if err := c.validateListing(); err != nil {
		return err
	}
	if err := c.validateEncryption(); err != nil {
		return err
	}
	if err := c.validateCredentials(); err != nil {
		return err
	}
	return c.validateExecution()
}

func (c *Config) validateListing() error {
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: batch size must be between 1 and %d, got %d", ErrInvalidConfig, MaxPageSize, c.PageSize)
	}
	return nil
}

func (c *Config) validateEncryption() error {
	if !ValidCiphers[c.Cipher] {
		return fmt.Errorf("%w: unsupported cipher %q: must be one of %s",
			ErrInvalidConfig, c.Cipher, strings.Join(CipherNames(), ", "))
	}
	if c.KMSKeyID != "" && !c.Cipher.IsKMS() {
		return fmt.Errorf("%w: kms key id requires cipher %s or %s, got %s",
			ErrInvalidConfig, CipherKMS, CipherKMSDSSE, c.Cipher)
	}
	return nil
}

func (c *Config) validateCredentials() error {
	hasKey := c.AccessKeyID != ""
	hasSecret := c.SecretAccessKey != ""
	if hasKey != hasSecret {
		return fmt.Errorf("%w: access key and secret access key must be given together", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validateExecution() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative, got %d", ErrInvalidConfig, c.MaxRetries)
	}
	return nil
}
