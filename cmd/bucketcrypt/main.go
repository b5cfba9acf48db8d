// Package main is the entry point for the bucketcrypt CLI.
//
// bucketcrypt re-encrypts every object in an S3 bucket in place by copying
// each object onto itself with server-side encryption set. It keeps no
// state between runs; re-running it is always safe.
//
// Commands: encrypt, list, version, completion.
//
// For detailed usage information, run:
//
//	bucketcrypt --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/bucketcrypt/cmd/bucketcrypt/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
