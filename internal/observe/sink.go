package observe

import (
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/imamik/bucketcrypt/internal/util/ptr"
)

// NewConsoleLogger returns a logr.Logger writing key="value" lines to out.
// Messages logged at a V-level above verbosity are dropped. Info lines
// carry no level key; errors carry an "error" key.
func NewConsoleLogger(out *log.Logger, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			out.Printf("%s: %s", prefix, args)
			return
		}
		out.Print(args)
	}, funcr.Options{
		Verbosity:    verbosity,
		LogInfoLevel: ptr.To(""),
	})
}
