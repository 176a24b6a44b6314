package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/xiam/minitla/cli"
	"github.com/xiam/minitla/cli/cmd"
	"github.com/xiam/minitla/log"
)

func main() {
	ctx := context.Background()
	stdio := cmd.Std()

	err := cli.Run(ctx, stdio, os.Exit, os.Args[1:]...)
	if err != nil {
		log.DebugContext(ctx,
			"run failed",
			slog.Any("error", err),
		) // slog automatically uses LogValue()
		cli.Report(stdio.Err, err)
		os.Exit(cli.ExitCode(err))
	}
}
