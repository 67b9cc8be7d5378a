package commands

import (
	"context"
	"errors"

	"orders/internal/core/ports"
	"orders/internal/pkg/guard"
)

var ErrPurgeExpiredIdempotencyRecordsCommandIsNotConstructed = errors.New(
	"PurgeExpiredIdempotencyRecordsCommand must be created via NewPurgeExpiredIdempotencyRecordsCommand constructor",
)

// PurgeExpiredIdempotencyRecordsCommand removes idempotency records whose
// retention window has passed. Lookups already ignore them; this keeps the
// table from growing.
type PurgeExpiredIdempotencyRecordsCommand struct {
	guard guard.ConstructorGuard
}

func NewPurgeExpiredIdempotencyRecordsCommand() PurgeExpiredIdempotencyRecordsCommand {
	return PurgeExpiredIdempotencyRecordsCommand{guard: guard.NewConstructorGuard()}
}

func (c PurgeExpiredIdempotencyRecordsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredIdempotencyRecordsCommandIsNotConstructed)
}

type PurgeExpiredIdempotencyRecordsCommandHandler struct {
	cache ports.IdempotencyCache
	clock ports.Clock
}

func NewPurgeExpiredIdempotencyRecordsCommandHandler(
	cache ports.IdempotencyCache,
	clock ports.Clock,
) PurgeExpiredIdempotencyRecordsCommandHandler {
	return PurgeExpiredIdempotencyRecordsCommandHandler{cache: cache, clock: clock}
}

// Handle returns the number of records removed.
func (h PurgeExpiredIdempotencyRecordsCommandHandler) Handle(
	ctx context.Context,
	cmd PurgeExpiredIdempotencyRecordsCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	return h.cache.PurgeExpired(ctx, h.clock.Now())
}
