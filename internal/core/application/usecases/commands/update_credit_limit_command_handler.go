package commands

import (
	"context"
)

// UpdateCreditLimitCommandHandler orchestrates credit limit changes.
// Uses the same row lock as every other ledger mutation so a limit change
// never races a concurrent debit's availability check.
type UpdateCreditLimitCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewUpdateCreditLimitCommandHandler creates a handler for limit changes.
func NewUpdateCreditLimitCommandHandler(uowFactory LedgerUoWFactory) UpdateCreditLimitCommandHandler {
	return UpdateCreditLimitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the limit change command.
func (h UpdateCreditLimitCommandHandler) Handle(ctx context.Context, cmd UpdateCreditLimitCommand) error {
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

	ledgerRepo := uow.LedgerRepository()

	balance, err := ledgerRepo.GetForUpdate(ctx, cmd.DealerID())
	if err != nil {
		return err
	}

	if err = balance.UpdateCreditLimit(cmd.NewLimit()); err != nil {
		return err
	}

	if err = ledgerRepo.Update(ctx, balance); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
