package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/voltride/voltdesk/cmd"
	"github.com/voltride/voltdesk/internal/logger"
)

func main() {
	// Diagnostics go to stderr so stdout stays clean for JSON and tables.
	logger.InitPterm()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
