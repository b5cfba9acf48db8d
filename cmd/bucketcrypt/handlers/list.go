package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/bucketcrypt/internal/config"
	"github.com/imamik/bucketcrypt/internal/observe"
	"github.com/imamik/bucketcrypt/internal/reencrypt"
)

// List handles the list command.
//
// It enumerates the bucket exactly as encrypt would and prints what a run
// would touch. No object is modified.
func List(ctx context.Context, configPath string, overrides config.Overrides) error {
	cfg, err := loadConfig(configPath, overrides)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	obs := observe.NewLogObserver(logger)

	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	inv, err := reencrypt.Survey(ctx, store, cfg.Bucket, cfg.PageSize,
		reencrypt.WithObserver(obs),
		reencrypt.WithRetryPolicy(reencrypt.PolicyFromConfig(cfg)))
	if err != nil {
		logHint(logger, err)
		return err
	}

	fmt.Fprint(stdout, renderInventory(inv))
	return nil
}
