package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// CancelShipmentCommandHandler orchestrates shipment cancellation.
// The carrier must accept the cancellation before any local state changes:
// when the gateway call fails or is declined, the shipment keeps its current
// status and CancellationFailedError is returned.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	registry   ports.CarrierRegistry
	publisher  ports.EventPublisher
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory, registry ports.CarrierRegistry, publisher ports.EventPublisher,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
// Delivered shipments fail with shipment.ErrAlreadyDelivered before any
// carrier contact. On success the shipment moves to returned, the reason is
// appended to its notes, and a status event is published.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if aggregate.Status() == shipment.StatusDelivered {
		return shipment.ErrAlreadyDelivered
	}

	gateway, ok := h.registry.Lookup(aggregate.CarrierID())
	if !ok {
		return NewUnsupportedCarrierError(aggregate.CarrierID(), h.registry.SupportedCarriers())
	}

	accepted, err := gateway.CancelShipment(ctx, aggregate)
	if err != nil {
		return NewCancellationFailedError(aggregate.CarrierID(), err)
	}
	if !accepted {
		return NewCancellationFailedError(aggregate.CarrierID(), nil)
	}

	change, err := aggregate.MarkReturned(cmd.Reason(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}
	if change == nil {
		return nil
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	note, err := shipment.NewAdminNote(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("cancelled: %s", cmd.Reason()),
		cmd.Actor(),
		change.OccurredAt,
	)
	if err != nil {
		return err
	}

	if err = shipmentRepo.AppendNote(ctx, note); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.PublishShipmentStatusChanged(ctx, ports.StatusChangedEvent{
		EntityID:   aggregate.ID(),
		Axis:       "shipment",
		From:       change.From,
		To:         change.To,
		OccurredAt: change.OccurredAt,
	})
}
