package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status log.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// guarded by the aggregate's optimistic version: a stale version fails
	// with errs.ErrVersionIsInvalid and no change is applied.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AppendStatusLog inserts one audit row. Log rows are append-only; no
	// update or delete operation exists on them.
	AppendStatusLog(ctx context.Context, entry *order.StatusLog) error

	// GetStatusLog retrieves all audit rows of an order, oldest first.
	GetStatusLog(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error)
}
