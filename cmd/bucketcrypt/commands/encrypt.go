package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/bucketcrypt/cmd/bucketcrypt/handlers"
)

// Encrypt returns the encrypt command.
//
// The encrypt command lists the bucket and copies every object onto itself
// with the configured server-side encryption.
func Encrypt() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Re-encrypt every object in a bucket",
		Long: `Encrypt copies every object in the bucket onto itself with server-side
encryption set. Object metadata is preserved.

The bucket is listed completely before the first copy. Objects are then
copied in listing order; the first failure stops the run and reports how
many objects were already re-encrypted. Re-running is safe: every object
is simply rewritten again.

Values are taken from flags, then the --config file, then defaults.

Example:
  bucketcrypt encrypt -b my-bucket -r eu-central-1
  bucketcrypt encrypt -b my-bucket -r eu-central-1 -c aws:kms --kms-key-id alias/my-key -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := handlers.Encrypt(cmd.Context(), handlers.EncryptOptions{
				ConfigPath: f.configPath,
				Overrides:  f.overrides(cmd),
				Confirm:    f.confirm,
				TUI:        f.tui,
			})
			return usageOnMissing(cmd, err)
		},
	}

	f.bindConnection(cmd)
	f.bindEncryption(cmd)

	return cmd
}
