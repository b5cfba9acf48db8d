package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/bucketcrypt/cmd/bucketcrypt/handlers"
)

// List returns the list command.
func List() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show what encrypt would re-encrypt",
		Long: `List enumerates the bucket exactly as encrypt does and prints the number
of objects, their total size and their storage classes. No object is
modified.

Example:
  bucketcrypt list -b my-bucket -r eu-central-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := handlers.List(cmd.Context(), f.configPath, f.overrides(cmd))
			return usageOnMissing(cmd, err)
		},
	}

	f.bindConnection(cmd)

	return cmd
}
