// Command statarb computes mean-reversion signals for a CSV panel of
// spread or residual series.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sartorproj/gostatarb/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the CLI with args and returns the process exit code. Command
// errors are logged to stderr.
func execute(ctx context.Context, args []string, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.NewWriter(stderr, zerolog.ErrorLevel, "console").
			Error().Err(err).Msg("statarb failed")
		return 1
	}
	return 0
}
