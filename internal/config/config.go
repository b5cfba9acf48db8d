package config

import (
	"sort"
	"strings"

	"github.com/imamik/bucketcrypt/internal/util/ptr"
)

// Cipher identifies the server-side encryption method applied to objects.
// Values match the S3 x-amz-server-side-encryption header.
type Cipher string

const (
	// CipherAES256 is SSE-S3, keys managed by the storage service.
	CipherAES256 Cipher = "AES256"
	// CipherKMS is SSE-KMS.
	CipherKMS Cipher = "aws:kms"
	// CipherKMSDSSE is dual-layer SSE-KMS.
	CipherKMSDSSE Cipher = "aws:kms:dsse"
)

// ValidCiphers contains every cipher accepted by the tool.
var ValidCiphers = map[Cipher]bool{
	CipherAES256:  true,
	CipherKMS:     true,
	CipherKMSDSSE: true,
}

// IsKMS reports whether the cipher uses a key management service key.
func (c Cipher) IsKMS() bool {
	return c == CipherKMS || c == CipherKMSDSSE
}

// String implements fmt.Stringer.
func (c Cipher) String() string {
	return string(c)
}

// CipherNames returns the accepted cipher identifiers, sorted.
func CipherNames() []string {
	names := make([]string, 0, len(ValidCiphers))
	for c := range ValidCiphers {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// Config holds everything a re-encryption run needs. It is immutable once
// validated.
type Config struct {
	// Target
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`

	// Credentials. Both empty means the SDK default credential chain.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	// S3-compatible services
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`

	// Listing and encryption
	PageSize int    `yaml:"batch_size"`
	Cipher   Cipher `yaml:"cipher"`
	KMSKeyID string `yaml:"kms_key_id"`

	// Execution
	Concurrency int  `yaml:"concurrency"`
	MaxRetries  int  `yaml:"max_retries"`
	Verbose     bool `yaml:"verbose"`

	// MetricsFile, when set, receives Prometheus text-format metrics at exit.
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		PageSize:    DefaultPageSize,
		Cipher:      DefaultCipher,
		Concurrency: DefaultConcurrency,
	}
}

// HasStaticCredentials reports whether an explicit key pair was configured.
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Redacted returns a copy with the secret access key masked, suitable for
// logging.
func (c *Config) Redacted() Config {
	out := *c
	if out.SecretAccessKey != "" {
		out.SecretAccessKey = strings.Repeat("*", 8)
	}
	return out
}

// Overrides carries values set explicitly on the command line. A nil field
// leaves the underlying value untouched.
type Overrides struct {
	Bucket          *string
	Region          *string
	AccessKeyID     *string
	SecretAccessKey *string
	Endpoint        *string
	PathStyle       *bool
	PageSize        *int
	Cipher          *string
	KMSKeyID        *string
	Concurrency     *int
	MaxRetries      *int
	Verbose         *bool
	MetricsFile     *string
}

// ApplyTo copies every non-nil override into cfg.
func (o Overrides) ApplyTo(cfg *Config) {
	cfg.Bucket = ptr.Deref(o.Bucket, cfg.Bucket)
	cfg.Region = ptr.Deref(o.Region, cfg.Region)
	cfg.AccessKeyID = ptr.Deref(o.AccessKeyID, cfg.AccessKeyID)
	cfg.SecretAccessKey = ptr.Deref(o.SecretAccessKey, cfg.SecretAccessKey)
	cfg.Endpoint = ptr.Deref(o.Endpoint, cfg.Endpoint)
	cfg.PathStyle = ptr.Deref(o.PathStyle, cfg.PathStyle)
	cfg.PageSize = ptr.Deref(o.PageSize, cfg.PageSize)
	cfg.MaxRetries = ptr.Deref(o.MaxRetries, cfg.MaxRetries)
	cfg.Verbose = ptr.Deref(o.Verbose, cfg.Verbose)

	cfg.Cipher = Cipher(ptr.Deref(o.Cipher, string(cfg.Cipher)))
	cfg.KMSKeyID = ptr.Deref(o.KMSKeyID, cfg.KMSKeyID)
	cfg.Concurrency = ptr.Deref(o.Concurrency, cfg.Concurrency)
	cfg.MetricsFile = ptr.Deref(o.MetricsFile, cfg.MetricsFile)
}
