package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
)

// UpdateShipmentStatusCommandHandler orchestrates shipment lifecycle updates.
// Applies the transition, persists the aggregate and an optional admin note in
// one transaction, then publishes a shipment status event.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateShipmentStatusCommandHandler creates a handler for shipment updates.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory, publisher ports.EventPublisher,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the shipment status command.
// Requesting the shipment's current status is a no-op with no note and no
// event. Invalid moves surface the domain's InvalidTransitionError; delivered
// shipments surface shipment.ErrAlreadyDelivered.
func (h UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
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

	change, err := aggregate.UpdateStatus(cmd.Target(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}
	if change == nil {
		return nil
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Note() != "" {
		note, noteErr := shipment.NewAdminNote(
			kernel.NewUUID(), aggregate.ID(), cmd.Note(), cmd.Actor(), change.OccurredAt,
		)
		if noteErr != nil {
			return noteErr
		}

		if err = shipmentRepo.AppendNote(ctx, note); err != nil {
			return err
		}
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
