package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/chief/internal/cmd"
	"github.com/felixgeelhaar/chief/internal/exitcode"
	"github.com/felixgeelhaar/chief/internal/log"
	"github.com/felixgeelhaar/chief/internal/ux"
)

func main() {
	// Create a context that listens for interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		// Check if error was due to context cancellation (e.g., Ctrl+C)
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, ux.ErrAborted) {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			exitcode.Exit(exitcode.Interrupted)
		}

		log.DefaultLogger().LogError(err)
		fmt.Fprintln(os.Stderr, ux.RenderError(ux.EnhanceError(err), ux.NewStyles(os.Getenv("NO_COLOR") != "")))
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
