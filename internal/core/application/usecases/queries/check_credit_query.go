package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckCreditQueryIsNotConstructed = errors.New(
	"CheckCreditQuery must be created via NewCheckCreditQuery constructor",
)

// CheckCreditQuery asks whether a dealer could currently cover a purchase of
// the given amount. This is an advisory read: the binding check happens again
// under the row lock when the order is actually placed.
type CheckCreditQuery struct {
	dealerID kernel.UUID
	amount   int64

	guard guard.ConstructorGuard
}

// NewCheckCreditQuery creates a credit availability check.
// The amount is in minor currency units and must be positive.
func NewCheckCreditQuery(dealerID kernel.UUID, amount int64) (CheckCreditQuery, error) {
	if err := dealerID.Validate(); err != nil {
		return CheckCreditQuery{}, err
	}
	if amount <= 0 {
		return CheckCreditQuery{}, ledger.ErrInvalidAmount
	}

	return CheckCreditQuery{
		dealerID: dealerID,
		amount:   amount,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckCreditQuery) Validate() error {
	return q.guard.Validate(ErrCheckCreditQueryIsNotConstructed)
}

// DealerID returns the identifier of the dealer to check.
func (q CheckCreditQuery) DealerID() kernel.UUID {
	return q.dealerID
}

// Amount returns the purchase amount to check against available credit.
func (q CheckCreditQuery) Amount() int64 {
	return q.amount
}

// CheckCreditQueryResponse reports whether the purchase would fit and by how
// much it misses when it would not.
type CheckCreditQueryResponse struct {
	OK        bool
	Available int64
	Shortfall int64
}
