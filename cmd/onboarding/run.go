package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

var osExit = os.Exit

// run starts the fx application, blocks until ctx is cancelled or the app
// requests shutdown, and returns the process exit code.
func run(ctx context.Context, app *fx.App) int {
	return runWithOutput(ctx, app, os.Stderr)
}

func runWithOutput(ctx context.Context, app *fx.App, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start onboarding service: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop onboarding service: %v\n", err)
		return 1
	}
	return 0
}
