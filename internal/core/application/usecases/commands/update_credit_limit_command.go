package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateCreditLimitCommandIsNotConstructed = errors.New(
	"UpdateCreditLimitCommand must be created via NewUpdateCreditLimitCommand constructor",
)

// UpdateCreditLimitCommand represents an administrative change to a dealer's
// credit limit. A lowered limit never fails on existing debt; the dealer's
// balance status turns over_limit instead.
type UpdateCreditLimitCommand struct { //nolint:recvcheck //using for validation
	dealerID kernel.UUID
	newLimit int64

	guard guard.ConstructorGuard
}

// NewUpdateCreditLimitCommand creates a command to set a dealer's credit limit.
// Validates that the dealer ID is set and the limit is not negative.
func NewUpdateCreditLimitCommand(dealerID kernel.UUID, newLimit int64) (UpdateCreditLimitCommand, error) {
	limitCommand := UpdateCreditLimitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		limitCommand.setDealerID(dealerID),
		limitCommand.setNewLimit(newLimit),
	); err != nil {
		return UpdateCreditLimitCommand{}, err
	}

	return limitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCreditLimitCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCreditLimitCommandIsNotConstructed)
}

// DealerID returns the identifier of the dealer whose limit changes.
func (c UpdateCreditLimitCommand) DealerID() kernel.UUID {
	return c.dealerID
}

// NewLimit returns the new credit limit in minor currency units.
func (c UpdateCreditLimitCommand) NewLimit() int64 {
	return c.newLimit
}

func (c *UpdateCreditLimitCommand) setDealerID(dealerID kernel.UUID) error {
	if err := dealerID.Validate(); err != nil {
		return err
	}

	c.dealerID = dealerID
	return nil
}

func (c *UpdateCreditLimitCommand) setNewLimit(newLimit int64) error {
	if newLimit < 0 {
		return errs.NewValueIsInvalidError("newLimit")
	}

	c.newLimit = newLimit
	return nil
}
