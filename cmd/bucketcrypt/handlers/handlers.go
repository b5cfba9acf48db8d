// Package handlers implements the business logic behind the CLI commands.
//
// Each handler loads the run configuration, builds the S3 client once and
// passes it explicitly to the re-encryption packages. Collaborators are
// held in package variables so tests can replace them.
package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/bucketcrypt/internal/config"
	"github.com/imamik/bucketcrypt/internal/observe"
	objstore "github.com/imamik/bucketcrypt/internal/platform/s3"
	"github.com/imamik/bucketcrypt/internal/reencrypt"
	"github.com/imamik/bucketcrypt/internal/ui/tui"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfig merges defaults, the config file and flag overrides.
	loadConfig = config.Load

	// newStore creates the S3 client for a run.
	newStore = func(ctx context.Context, cfg *config.Config) (reencrypt.Store, error) {
		return objstore.NewClient(ctx, objstore.Options{
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Endpoint:        cfg.Endpoint,
			PathStyle:       cfg.PathStyle,
		})
	}

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// confirmRun asks the user to approve the run.
	confirmRun = func(ctx context.Context, title, description string) (bool, error) {
		confirmed := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Description(description).
					Affirmative("Re-encrypt").
					Negative("Cancel").
					Value(&confirmed),
			),
		).RunWithContext(ctx)
		return confirmed, err
	}

	// runTUI runs the encrypt flow inside the dashboard.
	runTUI = tui.RunEncryptTUI

	// stdout receives rendered summaries.
	stdout io.Writer = os.Stdout

	// logOutput receives log lines.
	logOutput io.Writer = os.Stderr
)

// newLogger returns the console logger. Verbose enables V(1) messages.
func newLogger(verbose bool) logr.Logger {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	return observe.NewConsoleLogger(log.New(logOutput, "", log.LstdFlags), verbosity)
}

// logHint logs advice for S3 failures the user can act on.
func logHint(logger logr.Logger, err error) {
	switch {
	case err == nil:
	case objstore.IsAuthError(err):
		logger.Info("Check the credentials and that they grant s3:ListBucket, s3:GetObject and s3:PutObject on the bucket")
	case errors.Is(err, objstore.ErrBucketNotFound):
		logger.Info("Check the bucket name and region")
	case objstore.IsNotFound(err):
		logger.Info("An object was deleted after listing; rerun to re-encrypt the remaining objects")
	}
}
