package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/bucketcrypt/internal/config"
	"github.com/imamik/bucketcrypt/internal/metrics"
	"github.com/imamik/bucketcrypt/internal/observe"
	"github.com/imamik/bucketcrypt/internal/reencrypt"
	"github.com/imamik/bucketcrypt/internal/ui/tui"
)

// ErrNotInteractive is returned when an interactive flag is used without a
// terminal.
var ErrNotInteractive = errors.New("an interactive terminal is required")

// EncryptOptions carries the encrypt command's inputs.
type EncryptOptions struct {
	ConfigPath string
	Overrides  config.Overrides

	// Confirm asks for interactive approval before any object is copied.
	Confirm bool
	// TUI shows the progress dashboard instead of log lines.
	TUI bool
}

// Encrypt handles the encrypt command.
//
// It lists the whole bucket and then copies every object onto itself with
// the configured server-side encryption. Configuration errors are returned
// before any request is made. When a metrics file is configured it is
// written whether or not the run succeeded.
func Encrypt(ctx context.Context, opts EncryptOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	obs := observe.NewLogObserver(logger)
	logConfig(logger, cfg)

	if opts.Confirm {
		if !isInteractiveTTY() {
			return fmt.Errorf("--confirm: %w", ErrNotInteractive)
		}
		ok, err := confirmRun(ctx,
			fmt.Sprintf("Re-encrypt every object in %s?", cfg.Bucket),
			fmt.Sprintf("Each object is copied onto itself with %s in %s.", cfg.Cipher, cfg.Region))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			logger.Info("Aborted, no objects were modified")
			return nil
		}
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder(cfg.Bucket)
	}

	var summary *reencrypt.Summary
	run := func(ctx context.Context, o observe.Observer) error {
		observers := []observe.Observer{o}
		if recorder != nil {
			observers = append(observers, recorder)
		}
		var err error
		summary, err = reencrypt.NewRunner(store, *cfg, reencrypt.WithObserver(observe.Multi(observers...))).Run(ctx)
		return err
	}

	useTUI := opts.TUI && isInteractiveTTY()
	if opts.TUI && !useTUI {
		logger.Info("Not a terminal, falling back to log output")
	}

	if useTUI {
		err = runTUI(ctx, tui.RunInfo{
			Bucket: cfg.Bucket,
			Region: cfg.Region,
			Cipher: cfg.Cipher.String(),
		}, run)
	} else {
		err = run(ctx, obs)
	}

	if recorder != nil {
		if werr := recorder.WriteTextfile(cfg.MetricsFile); werr != nil {
			if err != nil {
				logger.Error(werr, "Metrics not written")
			} else {
				err = werr
			}
		}
	}

	if summary != nil {
		fmt.Fprint(stdout, renderRunSummary(summary, err))
	}
	logHint(logger, err)
	return err
}

func logConfig(logger logr.Logger, cfg *config.Config) {
	red := cfg.Redacted()
	kv := []any{
		"bucket", red.Bucket,
		"region", red.Region,
		"cipher", red.Cipher.String(),
		"batch_size", red.PageSize,
		"concurrency", red.Concurrency,
		"max_retries", red.MaxRetries,
	}
	if red.Endpoint != "" {
		kv = append(kv, "endpoint", red.Endpoint, "path_style", red.PathStyle)
	}
	if red.HasStaticCredentials() {
		kv = append(kv, "access_key", red.AccessKeyID, "secret_access_key", red.SecretAccessKey)
	}
	logger.V(1).Info("Configuration loaded", kv...)
}
