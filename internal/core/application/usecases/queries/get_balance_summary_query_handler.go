package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBalanceSummaryQueryHandler reads a dealer's balance row and derives the
// summary through the domain model, so the availability and status arithmetic
// lives in exactly one place.
type GetBalanceSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetBalanceSummaryQueryHandler creates a handler for balance summary queries.
// Requires a GORM database connection for query execution.
func NewGetBalanceSummaryQueryHandler(db *gorm.DB) GetBalanceSummaryQueryHandler {
	return GetBalanceSummaryQueryHandler{db: db}
}

// Handle executes the summary query. Dealers with no ledger activity yet fail
// with errs.ObjectNotFoundError.
func (h GetBalanceSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetBalanceSummaryQuery,
) (GetBalanceSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			dealer_id,
			balance,
			credit_limit,
			currency,
			last_transaction_at
		FROM dealer_balances
		WHERE dealer_id = ?
	`, query.DealerID().String()).Rows()
	if err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetBalanceSummaryQueryResponse{}, err
		}
		return GetBalanceSummaryQueryResponse{},
			errs.NewObjectNotFoundError("dealerID", query.DealerID().String())
	}

	var (
		id, dealerID      uuid.UUID
		balance, limit    int64
		currency          string
		lastTransactionAt sql.NullTime
	)
	if err = rows.Scan(&id, &dealerID, &balance, &limit, &currency, &lastTransactionAt); err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}

	balanceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}
	dealerUUID, err := kernel.UUIDFromBytes(dealerID[:])
	if err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}

	var lastAt *time.Time
	if lastTransactionAt.Valid {
		lastAt = &lastTransactionAt.Time
	}

	aggregate, err := ledger.RestoreDealerBalance(balanceID, dealerUUID, balance, limit, currency, lastAt)
	if err != nil {
		return GetBalanceSummaryQueryResponse{}, err
	}

	summary := aggregate.Summarize()

	return GetBalanceSummaryQueryResponse{
		DealerID:          dealerUUID,
		Balance:           summary.Balance,
		Available:         summary.Available,
		Debt:              summary.Debt,
		CreditLimit:       summary.Limit,
		Currency:          summary.Currency,
		Status:            summary.Status,
		LastTransactionAt: lastAt,
	}, nil
}
