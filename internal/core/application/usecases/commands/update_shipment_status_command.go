package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand represents a request to move a shipment along
// its lifecycle: preparing, shipped, delivered, returned. An optional note is
// attached to the shipment's admin notes when the transition succeeds.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	target     shipment.Status
	note       string
	actor      string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a command to change a shipment's status.
// The note may be empty; shipment ID, target status and actor are required.
func NewUpdateShipmentStatusCommand(
	shipmentID kernel.UUID, target shipment.Status, note, actor string,
) (UpdateShipmentStatusCommand, error) {
	statusCommand := UpdateShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setShipmentID(shipmentID),
		statusCommand.setTarget(target),
		statusCommand.setActor(actor),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	statusCommand.note = note

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to update.
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Target returns the requested destination status.
func (c UpdateShipmentStatusCommand) Target() shipment.Status {
	return c.target
}

// Note returns the optional admin note text.
func (c UpdateShipmentStatusCommand) Note() string {
	return c.note
}

// Actor returns who requested the update.
func (c UpdateShipmentStatusCommand) Actor() string {
	return c.actor
}

func (c *UpdateShipmentStatusCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStatusCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateShipmentStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
