package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// PlaceDealerOrderCommandHandler orchestrates wholesale order placement.
// Locks the dealer's balance, debits the order total, and creates the order
// in pending status within one database transaction. Either everything
// commits or nothing does: a dealer is never debited without an order and an
// order never exists without its debit.
type PlaceDealerOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewPlaceDealerOrderCommandHandler creates a handler for dealer order placement.
// Requires the cross-aggregate UoWFactory because ledger and order change together.
func NewPlaceDealerOrderCommandHandler(uowFactory UoWFactory) PlaceDealerOrderCommandHandler {
	return PlaceDealerOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dealer order command.
// The balance row lock serializes concurrent placements for one dealer, so
// two orders can never both pass the availability check against the same
// funds. Insufficient credit surfaces ledger.CreditLimitExceededError with
// the shortfall and aborts before any order row is written.
func (h PlaceDealerOrderCommandHandler) Handle(ctx context.Context, cmd PlaceDealerOrderCommand) error {
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
	orderRepo := uow.OrderRepository()

	balance, err := ledgerRepo.GetForUpdate(ctx, cmd.DealerID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	record, err := balance.Debit(
		kernel.NewUUID(),
		cmd.Totals().Total(),
		fmt.Sprintf("order %s", cmd.Number()),
		now,
	)
	if err != nil {
		return err
	}

	dealerID := cmd.DealerID()
	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.UserID(), &dealerID, cmd.Totals())
	if err != nil {
		return err
	}

	change, err := aggregate.TransitionTo(order.StatusPending, cmd.Actor(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	logEntry, err := order.NewStatusLog(kernel.NewUUID(), *change)
	if err != nil {
		return err
	}

	if err = orderRepo.AppendStatusLog(ctx, logEntry); err != nil {
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
