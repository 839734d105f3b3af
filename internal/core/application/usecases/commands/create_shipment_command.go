package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrCarrierIDIsRequired = errors.New("carrier id is required")
)

// CreateShipmentCommand represents a request to hand a paid order over to a
// carrier. Carries the target carrier identifier and optional free-form notes.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(kernel.NewUUID(), orderID, "ups", "fragile", "ops")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment request: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, registry)
//	tracking, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	orderID    kernel.UUID
	carrierID  string
	notes      string
	actor      string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a shipment with a carrier.
// Validates that both identifiers, the carrier id and the actor are set.
func NewCreateShipmentCommand(
	shipmentID, orderID kernel.UUID, carrierID, notes, actor string,
) (CreateShipmentCommand, error) {
	shipmentCommand := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentCommand.setShipmentID(shipmentID),
		shipmentCommand.setOrderID(orderID),
		shipmentCommand.setCarrierID(carrierID),
		shipmentCommand.setActor(actor),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	shipmentCommand.notes = notes

	return shipmentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier assigned to the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the identifier of the order to ship.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CarrierID returns the identifier of the carrier to ship with.
func (c CreateShipmentCommand) CarrierID() string {
	return c.carrierID
}

// Notes returns optional free-form shipment notes.
func (c CreateShipmentCommand) Notes() string {
	return c.notes
}

// Actor returns who requested the shipment.
func (c CreateShipmentCommand) Actor() string {
	return c.actor
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setCarrierID(carrierID string) error {
	if carrierID == "" {
		return ErrCarrierIDIsRequired
	}

	c.carrierID = carrierID
	return nil
}

func (c *CreateShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
