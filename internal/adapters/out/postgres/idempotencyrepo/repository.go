package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIdempotencyRepository implements ports.IdempotencyCache on PostgreSQL.
// Expiry is enforced at read time; PurgeExpired only reclaims space.
type GormIdempotencyRepository struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewGormIdempotencyRepository wraps an open handle. clock decides, on every
// Lookup, which records have expired and stamps created_at on Store.
func NewGormIdempotencyRepository(db *gorm.DB, clock ports.Clock) *GormIdempotencyRepository {
	return &GormIdempotencyRepository{db: db, clock: clock}
}

// Lookup returns the unexpired record for key, if any.
func (r *GormIdempotencyRepository) Lookup(ctx context.Context, key string) (*ports.CachedResult, error) {
	if key == "" {
		return nil, nil //nolint:nilnil // empty key never matches
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		Where("key = ? AND expires_at > ?", key, r.clock.Now()).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil // miss
		}
		return nil, errs.NewStoreUnavailableError("idempotency lookup", err)
	}

	return &ports.CachedResult{Payload: dto.Payload, StatusCode: dto.StatusCode}, nil
}

// Store upserts the record. A later write for the same key replaces the
// earlier one and restarts its retention window.
func (r *GormIdempotencyRepository) Store(
	ctx context.Context,
	key string,
	result ports.CachedResult,
	ttl time.Duration,
) error {
	now := r.clock.Now()
	dto := RecordDTO{
		Key:        key,
		Payload:    result.Payload,
		StatusCode: result.StatusCode,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "status_code", "created_at", "expires_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewStoreUnavailableError("idempotency store", err)
	}

	return nil
}

func (r *GormIdempotencyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&RecordDTO{})
	if result.Error != nil {
		return 0, errs.NewStoreUnavailableError("idempotency purge", result.Error)
	}

	return result.RowsAffected, nil
}
