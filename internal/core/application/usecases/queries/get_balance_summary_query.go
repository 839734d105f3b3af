// Package queries contains read-only operations for the query side of the
// CQRS architecture. Query handlers bypass the aggregate repositories and
// read directly from the database where that is cheaper.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBalanceSummaryQueryIsNotConstructed = errors.New(
	"GetBalanceSummaryQuery must be created via NewGetBalanceSummaryQuery constructor",
)

// GetBalanceSummaryQuery retrieves a dealer's current financial position:
// balance, available credit, outstanding debt and the derived status.
//
// Example:
//
//	query, err := NewGetBalanceSummaryQuery(dealerID)
//	handler := NewGetBalanceSummaryQueryHandler(db)
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get balance: %w", err)
//	}
//	fmt.Printf("available: %d %s\n", summary.Available, summary.Currency)
type GetBalanceSummaryQuery struct {
	dealerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBalanceSummaryQuery creates a query for a dealer's balance summary.
func NewGetBalanceSummaryQuery(dealerID kernel.UUID) (GetBalanceSummaryQuery, error) {
	if err := dealerID.Validate(); err != nil {
		return GetBalanceSummaryQuery{}, err
	}

	return GetBalanceSummaryQuery{
		dealerID: dealerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBalanceSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceSummaryQueryIsNotConstructed)
}

// DealerID returns the identifier of the dealer to summarize.
func (q GetBalanceSummaryQuery) DealerID() kernel.UUID {
	return q.dealerID
}

// GetBalanceSummaryQueryResponse represents a dealer's financial position at
// read time. All amounts are integer minor currency units.
type GetBalanceSummaryQueryResponse struct {
	DealerID          kernel.UUID
	Balance           int64
	Available         int64
	Debt              int64
	CreditLimit       int64
	Currency          string
	Status            ledger.BalanceStatus
	LastTransactionAt *time.Time
}
