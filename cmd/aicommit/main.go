package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoanghonghuy/aicommit/internal/app"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := ui.New()
	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		// the generator already printed why
		if !errors.Is(err, app.ErrNoMessage) {
			logger.Error("aicommit failed", err)
		}
		stop()
		os.Exit(1)
	}
}
