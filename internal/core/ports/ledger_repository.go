package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for dealer balances and
// their append-only transaction records.
type LedgerRepository interface {
	// GetForUpdate retrieves the dealer's balance under an exclusive row lock
	// held for the remainder of the surrounding transaction, creating the
	// balance lazily (zero balance, zero limit) on first access. The lock
	// serializes all concurrent mutations of one dealer's balance so the
	// check-then-mutate sequence in Debit is atomic.
	GetForUpdate(ctx context.Context, dealerID kernel.UUID) (*ledger.DealerBalance, error)

	// Get retrieves the dealer's balance without locking, for reads.
	// errs.ObjectNotFoundError when the dealer has no balance yet.
	Get(ctx context.Context, dealerID kernel.UUID) (*ledger.DealerBalance, error)

	// Update persists the mutated balance.
	Update(ctx context.Context, aggregate *ledger.DealerBalance) error

	// AppendTransaction inserts one audit record. Records are append-only and
	// must be written in the same database transaction as the balance update.
	AppendTransaction(ctx context.Context, tx *ledger.Transaction) error

	// GetTransactions retrieves all transaction records of a dealer, oldest first.
	GetTransactions(ctx context.Context, dealerID kernel.UUID) ([]*ledger.Transaction, error)
}
