package ledger

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrBalanceIsNotConstructed is returned when a DealerBalance was not
	// created via NewDealerBalance or RestoreDealerBalance.
	ErrBalanceIsNotConstructed = errors.New("DealerBalance must be created via NewDealerBalance or RestoreDealerBalance")

	// ErrInvalidAmount is returned for non-positive credit/debit amounts and
	// negative credit limits.
	ErrInvalidAmount = errors.New("amount is invalid")

	// ErrCreditLimitExceeded is the sentinel behind CreditLimitExceededError.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
)

// CreditLimitExceededError reports a debit that would push the dealer past
// their available credit. Shortfall is the amount by which the debit exceeds
// availability, in minor units.
type CreditLimitExceededError struct {
	Shortfall int64
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("credit limit exceeded, short %d", e.Shortfall)
}

func (e *CreditLimitExceededError) Unwrap() error {
	return ErrCreditLimitExceeded
}

// BalanceStatus classifies a dealer balance for reporting.
type BalanceStatus string

const (
	// BalancePositive means the dealer holds no debt.
	BalancePositive BalanceStatus = "positive"

	// BalanceNegative means the dealer holds debt within the credit limit.
	BalanceNegative BalanceStatus = "negative"

	// BalanceOverLimit means the dealer's debt exceeds the credit limit.
	BalanceOverLimit BalanceStatus = "over_limit"
)

// Summary is a read-only projection of a dealer balance.
type Summary struct {
	Balance   int64
	Available int64
	Debt      int64
	Limit     int64
	Currency  string
	Status    BalanceStatus
}

// DealerBalance is the aggregate root of a dealer's credit ledger. The
// balance is a signed amount in minor units and may go negative up to the
// credit limit. Every mutation yields exactly one Transaction record; callers
// persist both in the same database transaction so no balance change exists
// without an audit trail entry.
//
// Balances are created lazily on first access (zero balance, zero limit) and
// never deleted.
type DealerBalance struct {
	id                kernel.UUID
	dealerID          kernel.UUID
	balance           int64
	creditLimit       int64
	currency          string
	lastTransactionAt *time.Time

	isConstructed bool
}

// NewDealerBalance creates an empty balance for a dealer: zero balance,
// zero credit limit.
func NewDealerBalance(id, dealerID kernel.UUID, currency string) (*DealerBalance, error) {
	if err := errors.Join(id.Validate(), dealerID.Validate()); err != nil {
		return nil, err
	}
	if currency == "" {
		return nil, errors.New("currency code is required")
	}

	return &DealerBalance{
		id:            id,
		dealerID:      dealerID,
		currency:      currency,
		isConstructed: true,
	}, nil
}

// RestoreDealerBalance reconstructs a balance from persistence.
func RestoreDealerBalance(
	id, dealerID kernel.UUID,
	balance, creditLimit int64,
	currency string,
	lastTransactionAt *time.Time,
) (*DealerBalance, error) {
	if err := errors.Join(id.Validate(), dealerID.Validate()); err != nil {
		return nil, err
	}
	if creditLimit < 0 {
		return nil, ErrInvalidAmount
	}

	return &DealerBalance{
		id:                id,
		dealerID:          dealerID,
		balance:           balance,
		creditLimit:       creditLimit,
		currency:          currency,
		lastTransactionAt: lastTransactionAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the DealerBalance was created through a factory method.
func (b *DealerBalance) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBalanceIsNotConstructed
	}
	return nil
}

// ID returns the balance row identifier.
func (b *DealerBalance) ID() kernel.UUID { return b.id }

// DealerID returns the owning dealer's identifier.
func (b *DealerBalance) DealerID() kernel.UUID { return b.dealerID }

// Balance returns the signed balance in minor units.
func (b *DealerBalance) Balance() int64 { return b.balance }

// CreditLimit returns the non-negative credit limit in minor units.
func (b *DealerBalance) CreditLimit() int64 { return b.creditLimit }

// Currency returns the ledger currency code.
func (b *DealerBalance) Currency() string { return b.currency }

// LastTransactionAt returns the time of the latest mutation, nil before the
// first transaction.
func (b *DealerBalance) LastTransactionAt() *time.Time { return b.lastTransactionAt }

// Available returns creditLimit + balance: what the dealer may still spend
// before exceeding the credit limit.
func (b *DealerBalance) Available() int64 {
	return b.creditLimit + b.balance
}

// Debt returns max(0, -balance).
func (b *DealerBalance) Debt() int64 {
	if b.balance < 0 {
		return -b.balance
	}
	return 0
}

// Status classifies the balance: positive, negative, or over_limit when the
// debt exceeds the credit limit.
func (b *DealerBalance) Status() BalanceStatus {
	switch {
	case b.Debt() > b.creditLimit:
		return BalanceOverLimit
	case b.balance < 0:
		return BalanceNegative
	default:
		return BalancePositive
	}
}

// AddCredit increases the balance by amount and returns the credit
// transaction record to persist alongside. Amount must be positive.
func (b *DealerBalance) AddCredit(id kernel.UUID, amount int64, note string, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	b.balance += amount
	b.lastTransactionAt = &now

	return newTransaction(id, b.dealerID, TransactionCredit, amount, note, b.balance, now)
}

// Debit decreases the balance by amount after the availability check:
// balance - amount must stay >= -creditLimit, otherwise the debit fails with
// CreditLimitExceededError carrying the shortfall and nothing is applied.
func (b *DealerBalance) Debit(id kernel.UUID, amount int64, note string, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if available := b.Available(); amount > available {
		return nil, &CreditLimitExceededError{Shortfall: amount - available}
	}

	b.balance -= amount
	b.lastTransactionAt = &now

	return newTransaction(id, b.dealerID, TransactionDebit, amount, note, b.balance, now)
}

// UpdateCreditLimit replaces the credit limit. The limit is descriptive of
// policy, not a clamp on existing debt: lowering it below current debt
// succeeds and the balance reads over_limit afterwards.
func (b *DealerBalance) UpdateCreditLimit(newLimit int64) error {
	if newLimit < 0 {
		return ErrInvalidAmount
	}

	b.creditLimit = newLimit
	return nil
}

// Summarize returns the read-only projection of the balance.
func (b *DealerBalance) Summarize() Summary {
	return Summary{
		Balance:   b.balance,
		Available: b.Available(),
		Debt:      b.Debt(),
		Limit:     b.creditLimit,
		Currency:  b.currency,
		Status:    b.Status(),
	}
}
