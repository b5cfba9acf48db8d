package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCipher_IsKMS(t *testing.T) {
	t.Parallel()
	assert.False(t, CipherAES256.IsKMS())
	assert.True(t, CipherKMS.IsKMS())
	assert.True(t, CipherKMSDSSE.IsKMS())
}

func TestCipherNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"AES256", "aws:kms", "aws:kms:dsse"}, CipherNames())
}

func TestOverrides_ApplyTo(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Bucket = "keep"

	cipher := "aws:kms"
	size := 10
	pathStyle := true
	Overrides{Cipher: &cipher, PageSize: &size, PathStyle: &pathStyle}.ApplyTo(cfg)

	assert.Equal(t, "keep", cfg.Bucket)
	assert.Equal(t, CipherKMS, cfg.Cipher)
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.PathStyle)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.AccessKeyID = "AKIA"
	cfg.SecretAccessKey = "very-secret"

	r := cfg.Redacted()
	assert.Equal(t, "AKIA", r.AccessKeyID)
	assert.NotContains(t, r.SecretAccessKey, "very-secret")
	assert.Equal(t, "very-secret", cfg.SecretAccessKey)
}
