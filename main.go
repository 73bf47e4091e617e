package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/slip/cli"
	"github.com/ardnew/slip/cli/cmd"
	"github.com/ardnew/slip/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// A script's top-level return value becomes the exit status.
		var status cmd.ExitStatus
		if errors.As(err, &status) {
			os.Exit(int(status))
		}

		log.Error(
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		os.Exit(1)
	}
}
