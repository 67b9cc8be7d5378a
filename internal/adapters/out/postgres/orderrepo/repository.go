package orderrepo

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on PostgreSQL.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository wraps an open handle. The tables must already be
// migrated with postgres.Migrate.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Insert saves a new order.
func (r *GormOrderRepository) Insert(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreUnavailableError("insert order", err)
	}

	return nil
}

// FindByID retrieves an order by ID.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreUnavailableError("find order", err)
	}

	return toDomain(dto)
}

// CompareAndSwapStatus runs a single conditional UPDATE ... RETURNING. The
// WHERE clause on version is the only serialization point between writers.
func (r *GormOrderRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	expectedVersion int64,
	newStatus order.Status,
	now time.Time,
) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	result := r.db.WithContext(ctx).
		Model(&dto).
		Clauses(clause.Returning{}).
		Where("id = ? AND version = ?", id.Bytes(), expectedVersion).
		Updates(map[string]any{
			"status":     newStatus.String(),
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, errs.NewStoreUnavailableError("compare and swap order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, errs.ErrVersionMismatch
	}

	return toDomain(dto)
}
