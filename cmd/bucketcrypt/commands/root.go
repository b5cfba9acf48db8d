// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the bucketcrypt CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucketcrypt",
		Short: "Re-encrypt every object in an S3 bucket in place",
		Long: `bucketcrypt re-encrypts every object in an S3 bucket by copying each
object onto itself with server-side encryption set.

The bucket is listed completely first, then objects are copied one by one
in listing order. The first failure stops the run.`,
		// Usage is printed explicitly for configuration errors only.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Encrypt())
	cmd.AddCommand(List())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
