package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateProductionStatusCommandIsNotConstructed = errors.New(
	"UpdateProductionStatusCommand must be created via NewUpdateProductionStatusCommand constructor",
)

// UpdateProductionStatusCommand represents a request to advance an order's
// manufacturing axis: pending, in_production, ready, shipped. Production moves
// strictly one stage forward and only after the order is paid.
type UpdateProductionStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.ProductionStatus
	actor   string

	guard guard.ConstructorGuard
}

// NewUpdateProductionStatusCommand creates a command to advance production.
// Validates that the order ID, target stage and actor are set.
func NewUpdateProductionStatusCommand(
	orderID kernel.UUID, target order.ProductionStatus, actor string,
) (UpdateProductionStatusCommand, error) {
	productionCommand := UpdateProductionStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productionCommand.setOrderID(orderID),
		productionCommand.setTarget(target),
		productionCommand.setActor(actor),
	); err != nil {
		return UpdateProductionStatusCommand{}, err
	}

	return productionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductionStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductionStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c UpdateProductionStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested production stage.
func (c UpdateProductionStatusCommand) Target() order.ProductionStatus {
	return c.target
}

// Actor returns who requested the advance, recorded in the status log.
func (c UpdateProductionStatusCommand) Actor() string {
	return c.actor
}

func (c *UpdateProductionStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateProductionStatusCommand) setTarget(target order.ProductionStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateProductionStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
