package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates
// and their append-only admin notes.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, guarded by
	// the aggregate's optimistic version.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByOrderID retrieves the shipment of an order. Each order has at most
	// one shipment; errs.ObjectNotFoundError when none exists.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)

	// AppendNote inserts one admin note. Notes are append-only.
	AppendNote(ctx context.Context, note *shipment.AdminNote) error

	// GetNotes retrieves all admin notes of a shipment, oldest first.
	GetNotes(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.AdminNote, error)
}
