package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelShipmentCommandIsNotConstructed = errors.New(
		"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
	)
	ErrReasonIsRequired = errors.New("cancellation reason is required")
)

// CancelShipmentCommand represents a request to cancel a shipment before
// delivery. The reason is mandatory and ends up in the shipment's notes.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	reason     string
	actor      string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
// Validates that the shipment ID, the reason and the actor are set.
func NewCancelShipmentCommand(shipmentID kernel.UUID, reason, actor string) (CancelShipmentCommand, error) {
	cancelCommand := CancelShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setShipmentID(shipmentID),
		cancelCommand.setReason(reason),
		cancelCommand.setActor(actor),
	); err != nil {
		return CancelShipmentCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to cancel.
func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns why the shipment is being cancelled.
func (c CancelShipmentCommand) Reason() string {
	return c.reason
}

// Actor returns who requested the cancellation.
func (c CancelShipmentCommand) Actor() string {
	return c.actor
}

func (c *CancelShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CancelShipmentCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}

func (c *CancelShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
