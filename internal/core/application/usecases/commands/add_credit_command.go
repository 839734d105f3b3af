package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/guard"
)

var ErrAddCreditCommandIsNotConstructed = errors.New(
	"AddCreditCommand must be created via NewAddCreditCommand constructor",
)

// AddCreditCommand represents a payment or adjustment in a dealer's favor.
// Amounts are integer minor currency units and must be positive.
//
// Example:
//
//	cmd, err := NewAddCreditCommand(dealerID, 50_000, "wire transfer #4411")
//	if err != nil {
//	    return fmt.Errorf("invalid credit request: %w", err)
//	}
//
//	handler := NewAddCreditCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("credit failed: %w", err)
//	}
type AddCreditCommand struct { //nolint:recvcheck //using for validation
	dealerID kernel.UUID
	amount   int64
	note     string

	guard guard.ConstructorGuard
}

// NewAddCreditCommand creates a command to credit a dealer's balance.
// Validates that the dealer ID is set and the amount is positive.
func NewAddCreditCommand(dealerID kernel.UUID, amount int64, note string) (AddCreditCommand, error) {
	creditCommand := AddCreditCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		creditCommand.setDealerID(dealerID),
		creditCommand.setAmount(amount),
	); err != nil {
		return AddCreditCommand{}, err
	}

	creditCommand.note = note

	return creditCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCreditCommand) Validate() error {
	return c.guard.Validate(ErrAddCreditCommandIsNotConstructed)
}

// DealerID returns the identifier of the dealer to credit.
func (c AddCreditCommand) DealerID() kernel.UUID {
	return c.dealerID
}

// Amount returns the credit amount in minor currency units.
func (c AddCreditCommand) Amount() int64 {
	return c.amount
}

// Note returns the optional free-form annotation for the transaction record.
func (c AddCreditCommand) Note() string {
	return c.note
}

func (c *AddCreditCommand) setDealerID(dealerID kernel.UUID) error {
	if err := dealerID.Validate(); err != nil {
		return err
	}

	c.dealerID = dealerID
	return nil
}

func (c *AddCreditCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}

	c.amount = amount
	return nil
}
