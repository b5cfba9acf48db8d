package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/bucketcrypt/internal/config"
	"github.com/imamik/bucketcrypt/internal/util/ptr"
)

// runFlags holds the values bound to the encrypt and list flag sets.
type runFlags struct {
	configPath string

	bucket     string
	region     string
	accessKey  string
	secretKey  string
	endpoint   string
	pathStyle  bool
	batchSize  int
	maxRetries int
	verbose    bool

	cipher      string
	kmsKeyID    string
	concurrency int
	metricsFile string
	confirm     bool
	tui         bool
}

// bindConnection registers the flags shared by encrypt and list.
func (f *runFlags) bindConnection(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "Path to YAML configuration file")
	fl.StringVarP(&f.bucket, "bucket", "b", "", "Bucket name (required)")
	fl.StringVarP(&f.region, "region", "r", "", "Bucket region (required)")
	fl.StringVarP(&f.accessKey, "access-key", "k", "", "Access key ID (default: AWS credential chain)")
	fl.StringVarP(&f.secretKey, "secret-access-key", "s", "", "Secret access key")
	fl.StringVar(&f.endpoint, "endpoint", "", "Custom endpoint URL for S3-compatible services")
	fl.BoolVar(&f.pathStyle, "path-style", false, "Use path-style bucket addressing")
	fl.IntVarP(&f.batchSize, "batch-size", "n", config.DefaultPageSize, "Objects requested per listing call (1-1000)")
	fl.IntVar(&f.maxRetries, "max-retries", 0, "Retries for throttled, 5xx and timed out requests")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Print every listing page and encrypted object")
}

// bindEncryption registers the flags only encrypt uses.
func (f *runFlags) bindEncryption(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.cipher, "cipher", "c", string(config.DefaultCipher),
		"Server-side encryption: "+strings.Join(config.CipherNames(), ", "))
	fl.StringVar(&f.kmsKeyID, "kms-key-id", "", "KMS key ID or ARN (aws:kms and aws:kms:dsse only)")
	fl.IntVar(&f.concurrency, "concurrency", config.DefaultConcurrency, "Copies in flight at once")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus text-format metrics to this file at exit")
	fl.BoolVar(&f.confirm, "confirm", false, "Ask for confirmation before copying (interactive terminal only)")
	fl.BoolVar(&f.tui, "tui", false, "Show a progress dashboard (interactive terminal only)")

	_ = cmd.RegisterFlagCompletionFunc("cipher", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.CipherNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// overrides returns the flags the user set explicitly. Unset flags leave
// config file values and defaults in place.
func (f *runFlags) overrides(cmd *cobra.Command) config.Overrides {
	changed := cmd.Flags().Changed
	var o config.Overrides

	if changed("bucket") {
		o.Bucket = ptr.To(f.bucket)
	}
	if changed("region") {
		o.Region = ptr.To(f.region)
	}
	if changed("access-key") {
		o.AccessKeyID = ptr.To(f.accessKey)
	}
	if changed("secret-access-key") {
		o.SecretAccessKey = ptr.To(f.secretKey)
	}
	if changed("endpoint") {
		o.Endpoint = ptr.To(f.endpoint)
	}
	if changed("path-style") {
		o.PathStyle = ptr.To(f.pathStyle)
	}
	if changed("batch-size") {
		o.PageSize = ptr.To(f.batchSize)
	}
	if changed("max-retries") {
		o.MaxRetries = ptr.To(f.maxRetries)
	}
	if changed("verbose") {
		o.Verbose = ptr.To(f.verbose)
	}
	if changed("cipher") {
		o.Cipher = ptr.To(f.cipher)
	}
	if changed("kms-key-id") {
		o.KMSKeyID = ptr.To(f.kmsKeyID)
	}
	if changed("concurrency") {
		o.Concurrency = ptr.To(f.concurrency)
	}
	if changed("metrics-file") {
		o.MetricsFile = ptr.To(f.metricsFile)
	}
	return o
}

// usageOnMissing prints usage when err reports missing required
// configuration, then returns err unchanged.
func usageOnMissing(cmd *cobra.Command, err error) error {
	if errors.Is(err, config.ErrMissingRequired) {
		_ = cmd.Usage()
	}
	return err
}
