package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// setupLifecycle bounds a computation by timeout and by SIGINT/SIGTERM. The
// returned function releases both.
func setupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signalContext(ctx)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}
