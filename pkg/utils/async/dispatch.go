package async

import (
	"context"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch executes a handler function asynchronously with panic recovery.
// Webhook handlers use it to acknowledge Slack immediately while the real
// work continues in the background. Each dispatch gets its own job ID so
// background log lines can be correlated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)
	newCtx = ctxlog.With(newCtx, ctxlog.From(newCtx).With("jobID", uuid.NewString()))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext detaches from the request context (which dies when
// the response is written) while preserving the logger
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	logger := ctxlog.From(ctx)
	if logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	return newCtx
}
