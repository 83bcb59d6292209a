// Package main provides the entry point for the moodle-plugin-ci CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/moodle-plugin-ci/internal/cli"
	"github.com/mrz1836/moodle-plugin-ci/internal/signal"
)

// Set at build time via ldflags.
var (
	version = "" //nolint:gochecknoglobals // ldflags target
	commit  = "" //nolint:gochecknoglobals // ldflags target
	date    = "" //nolint:gochecknoglobals // ldflags target
)

func main() {
	h := signal.NewHandler(context.Background())
	code := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date}, os.Stderr)
	if h.WasInterrupted() && code == cli.ExitSuccess {
		code = cli.ExitError
	}
	h.Stop()
	os.Exit(code)
}
