package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/fx"
)

func TestRunWithOutputStopsOnContextCancel(t *testing.T) {
	app := fx.New(fx.NopLogger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan int, 1)
	go func() {
		done <- runWithOutput(ctx, app, &bytes.Buffer{})
	}()
	cancel()

	select {
	case code := <-done:
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d", code)
		}
	case <-time.After(time.Second):
		t.Fatal("expected run to return after cancel")
	}
}

func TestRunWithOutputReportsStartFailure(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStart: func(context.Context) error { return errors.New("boom") }})
		}),
	)

	var stderr bytes.Buffer
	if code := runWithOutput(context.Background(), app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to start onboarding service") {
		t.Fatalf("unexpected stderr output %q", stderr.String())
	}
}
