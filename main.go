package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/duck/cli"
	"github.com/ardnew/duck/log"
)

func main() {
	ctx := context.Background()

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)
	if err != nil {
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
