// Package ledgerrepo provides data transfer objects and mapping functions for
// dealer balance and transaction persistence.
package ledgerrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// DealerBalanceDTO represents the database structure for dealer balances.
// One row per dealer; mutations run under a FOR UPDATE lock on this row.
type DealerBalanceDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealerID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Balance           int64
	CreditLimit       int64
	Currency          string
	LastTransactionAt *time.Time
}

// TableName specifies the database table name for dealer balances.
func (DealerBalanceDTO) TableName() string {
	return "dealer_balances"
}

// TransactionDTO represents one append-only ledger record.
type TransactionDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealerID         uuid.UUID `gorm:"type:uuid;index"`
	Type             string
	Amount           int64
	Note             string
	ResultingBalance int64
	CreatedAt        time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger transactions.
func (TransactionDTO) TableName() string {
	return "ledger_transactions"
}

func fromDomain(aggregate *ledger.DealerBalance) DealerBalanceDTO {
	return DealerBalanceDTO{
		ID:                aggregate.ID().Bytes(),
		DealerID:          aggregate.DealerID().Bytes(),
		Balance:           aggregate.Balance(),
		CreditLimit:       aggregate.CreditLimit(),
		Currency:          aggregate.Currency(),
		LastTransactionAt: aggregate.LastTransactionAt(),
	}
}

func toDomain(dto DealerBalanceDTO) (*ledger.DealerBalance, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dealerID, err := kernel.UUIDFromBytes(dto.DealerID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreDealerBalance(
		id, dealerID, dto.Balance, dto.CreditLimit, dto.Currency, dto.LastTransactionAt,
	)
}

func transactionFromDomain(tx *ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:               tx.ID().Bytes(),
		DealerID:         tx.DealerID().Bytes(),
		Type:             string(tx.Type()),
		Amount:           tx.Amount(),
		Note:             tx.Note(),
		ResultingBalance: tx.ResultingBalance(),
		CreatedAt:        tx.CreatedAt(),
	}
}

func transactionToDomain(dto TransactionDTO) (*ledger.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dealerID, err := kernel.UUIDFromBytes(dto.DealerID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreTransaction(
		id, dealerID, ledger.TransactionType(dto.Type), dto.Amount, dto.Note, dto.ResultingBalance, dto.CreatedAt,
	)
}
