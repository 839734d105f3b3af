package ledger

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrTransactionIsNotConstructed is returned when a Transaction was not
// created via the ledger operations or RestoreTransaction.
var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via a ledger operation or RestoreTransaction")

// TransactionType distinguishes ledger mutations.
type TransactionType string

const (
	// TransactionCredit records a balance increase.
	TransactionCredit TransactionType = "credit"

	// TransactionDebit records a balance decrease.
	TransactionDebit TransactionType = "debit"
)

// Transaction is the append-only audit record of one balance mutation:
// amount, note, and the balance that resulted. Rows are never updated or
// deleted.
type Transaction struct {
	id               kernel.UUID
	dealerID         kernel.UUID
	typ              TransactionType
	amount           int64
	note             string
	resultingBalance int64
	createdAt        time.Time

	isConstructed bool
}

func newTransaction(
	id, dealerID kernel.UUID,
	typ TransactionType,
	amount int64,
	note string,
	resultingBalance int64,
	createdAt time.Time,
) (*Transaction, error) {
	if err := errors.Join(id.Validate(), dealerID.Validate()); err != nil {
		return nil, err
	}

	return &Transaction{
		id:               id,
		dealerID:         dealerID,
		typ:              typ,
		amount:           amount,
		note:             note,
		resultingBalance: resultingBalance,
		createdAt:        createdAt,
		isConstructed:    true,
	}, nil
}

// RestoreTransaction reconstructs a transaction record from persistence.
func RestoreTransaction(
	id, dealerID kernel.UUID,
	typ TransactionType,
	amount int64,
	note string,
	resultingBalance int64,
	createdAt time.Time,
) (*Transaction, error) {
	return newTransaction(id, dealerID, typ, amount, note, resultingBalance, createdAt)
}

// Validate ensures the Transaction was created through a factory method.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

// ID returns the transaction identifier.
func (t *Transaction) ID() kernel.UUID { return t.id }

// DealerID returns the owning dealer's identifier.
func (t *Transaction) DealerID() kernel.UUID { return t.dealerID }

// Type returns whether the mutation was a credit or a debit.
func (t *Transaction) Type() TransactionType { return t.typ }

// Amount returns the mutation amount in minor units, always positive.
func (t *Transaction) Amount() int64 { return t.amount }

// Note returns the free-text attribution of the mutation.
func (t *Transaction) Note() string { return t.note }

// ResultingBalance returns the balance immediately after the mutation.
func (t *Transaction) ResultingBalance() int64 { return t.resultingBalance }

// CreatedAt returns when the mutation was applied.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
