package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// AddCreditCommandHandler orchestrates balance credits.
// The dealer's balance row is locked for the duration of the transaction so
// concurrent mutations of the same balance serialize; the balance update and
// its transaction record commit atomically.
type AddCreditCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewAddCreditCommandHandler creates a handler for credit operations.
func NewAddCreditCommandHandler(uowFactory LedgerUoWFactory) AddCreditCommandHandler {
	return AddCreditCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the credit command. The balance is created lazily on a
// dealer's first ledger operation.
func (h AddCreditCommandHandler) Handle(ctx context.Context, cmd AddCreditCommand) error {
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

	record, err := balance.AddCredit(kernel.NewUUID(), cmd.Amount(), cmd.Note(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = ledgerRepo.Update(ctx, balance); err != nil {
		return err
	}

	if err = ledgerRepo.AppendTransaction(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
