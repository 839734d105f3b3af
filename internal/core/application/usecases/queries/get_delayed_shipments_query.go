package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDelayedShipmentsQueryIsNotConstructed = errors.New(
	"GetDelayedShipmentsQuery must be created via NewGetDelayedShipmentsQuery constructor",
)

// GetDelayedShipmentsQuery retrieves shipments whose delivery estimate has
// passed while they are still in flight. Used by the delay monitoring job and
// the operations dashboard.
//
// Example:
//
//	query := NewGetDelayedShipmentsQuery()
//	handler := NewGetDelayedShipmentsQueryHandler(db)
//
//	delayed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list delayed shipments: %w", err)
//	}
//	fmt.Printf("%d shipments past their estimate\n", len(delayed))
type GetDelayedShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDelayedShipmentsQuery creates a query for overdue shipments.
// This is a parameterless query evaluated against the current time.
func NewGetDelayedShipmentsQuery() GetDelayedShipmentsQuery {
	return GetDelayedShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDelayedShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDelayedShipmentsQueryIsNotConstructed)
}

// GetDelayedShipmentsQueryResponse represents one overdue shipment.
type GetDelayedShipmentsQueryResponse struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	CarrierID         string
	TrackingNumber    string
	Status            string
	EstimatedDelivery time.Time
}
