package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceDealerOrderCommandIsNotConstructed = errors.New(
	"PlaceDealerOrderCommand must be created via NewPlaceDealerOrderCommand constructor",
)

// PlaceDealerOrderCommand represents a wholesale purchase against a dealer's
// credit line. Placement debits the dealer's balance and creates the order in
// pending status as one atomic operation; insufficient credit aborts both.
//
// Example:
//
//	totals, _ := order.NewTotals(40_000, 0, 0, 0, "USD")
//	cmd, err := NewPlaceDealerOrderCommand(orderID, "SO-1042", userID, dealerID, totals, "b2b-portal")
//	if err != nil {
//	    return fmt.Errorf("invalid dealer order: %w", err)
//	}
//
//	handler := NewPlaceDealerOrderCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	var limitErr *ledger.CreditLimitExceededError
//	if errors.As(err, &limitErr) {
//	    log.Printf("short by %d minor units", limitErr.Shortfall)
//	}
type PlaceDealerOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	number   string
	userID   kernel.UUID
	dealerID kernel.UUID
	totals   order.Totals
	actor    string

	guard guard.ConstructorGuard
}

// NewPlaceDealerOrderCommand creates a command to place a dealer order.
// Validates identifiers, the order number, the totals and the actor.
func NewPlaceDealerOrderCommand(
	orderID kernel.UUID, number string, userID, dealerID kernel.UUID, totals order.Totals, actor string,
) (PlaceDealerOrderCommand, error) {
	orderCommand := PlaceDealerOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setUserID(userID),
		orderCommand.setDealerID(dealerID),
		orderCommand.setTotals(totals),
		orderCommand.setActor(actor),
	); err != nil {
		return PlaceDealerOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceDealerOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceDealerOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c PlaceDealerOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-facing order number.
func (c PlaceDealerOrderCommand) Number() string {
	return c.number
}

// UserID returns the identifier of the user placing the order.
func (c PlaceDealerOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// DealerID returns the identifier of the dealer whose credit is debited.
func (c PlaceDealerOrderCommand) DealerID() kernel.UUID {
	return c.dealerID
}

// Totals returns the validated monetary breakdown of the order.
func (c PlaceDealerOrderCommand) Totals() order.Totals {
	return c.totals
}

// Actor returns who placed the order, recorded in the status log.
func (c PlaceDealerOrderCommand) Actor() string {
	return c.actor
}

func (c *PlaceDealerOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceDealerOrderCommand) setNumber(number string) error {
	if number == "" {
		return order.ErrNumberIsRequired
	}

	c.number = number
	return nil
}

func (c *PlaceDealerOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *PlaceDealerOrderCommand) setDealerID(dealerID kernel.UUID) error {
	if err := dealerID.Validate(); err != nil {
		return err
	}

	c.dealerID = dealerID
	return nil
}

func (c *PlaceDealerOrderCommand) setTotals(totals order.Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}

	c.totals = totals
	return nil
}

func (c *PlaceDealerOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
