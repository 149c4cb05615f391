// Package main is the entry point for the stylefmt CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/stylefmt/internal/cli"
	"github.com/yaklabco/stylefmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	code := cli.ExitCode(err)
	if err == nil {
		return code
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return code
	}

	logger := logging.Default()
	if code == cli.ExitInterrupted {
		logger.Warn("interrupted")
	} else {
		logger.Error("command failed", logging.FieldError, err)
	}
	return code
}
