package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChangedEvent is the outbound notification emitted after every
// successful order or shipment transition. The core never formats messages;
// the external notifier subscribes and renders them.
type StatusChangedEvent struct {
	EntityID   kernel.UUID
	Axis       string
	From       string
	To         string
	OccurredAt time.Time
}

// EventPublisher delivers status-change events to the notification
// collaborator. Publishing happens after commit; a publish failure must not
// roll back the committed state change.
type EventPublisher interface {
	// PublishOrderStatusChanged emits an order transition event.
	PublishOrderStatusChanged(ctx context.Context, event StatusChangedEvent) error

	// PublishShipmentStatusChanged emits a shipment transition event.
	PublishShipmentStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
