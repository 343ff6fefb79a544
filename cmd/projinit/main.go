package main

import (
	"errors"
	"os"

	"github.com/danieljhkim/projinit/internal/cli"
	"github.com/danieljhkim/projinit/internal/overlay"
)

var version = "dev"

// Exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitMissingLayer = 2
)

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, overlay.ErrMissingLayer):
		return ExitMissingLayer
	default:
		return ExitFailure
	}
}
