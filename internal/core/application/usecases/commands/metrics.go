package commands

import (
	"context"
	"log/slog"
)

// emit runs a metrics callback. A panicking sink is logged and swallowed.
func emit(ctx context.Context, logger *slog.Logger, record func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.WarnContext(ctx, "metrics sink failed", "panic", r)
		}
	}()
	record()
}
