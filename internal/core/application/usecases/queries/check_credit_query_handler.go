package queries

import (
	"context"

	"gorm.io/gorm"
)

// CheckCreditQueryHandler answers advisory credit checks.
// A dealer with no balance row yet has zero balance and zero limit, matching
// the lazy creation the write side performs on first ledger activity.
type CheckCreditQueryHandler struct {
	db *gorm.DB
}

// NewCheckCreditQueryHandler creates a handler for credit checks.
func NewCheckCreditQueryHandler(db *gorm.DB) CheckCreditQueryHandler {
	return CheckCreditQueryHandler{db: db}
}

// Handle executes the credit check.
func (h CheckCreditQueryHandler) Handle(
	ctx context.Context,
	query CheckCreditQuery,
) (CheckCreditQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckCreditQueryResponse{}, err
	}

	var available int64

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			credit_limit + balance
		FROM dealer_balances
		WHERE dealer_id = ?
	`, query.DealerID().String()).Rows()
	if err != nil {
		return CheckCreditQueryResponse{}, err
	}
	defer rows.Close()

	if rows.Next() {
		if err = rows.Scan(&available); err != nil {
			return CheckCreditQueryResponse{}, err
		}
	}
	if err = rows.Err(); err != nil {
		return CheckCreditQueryResponse{}, err
	}

	response := CheckCreditQueryResponse{Available: available}
	if query.Amount() <= available {
		response.OK = true
	} else {
		response.Shortfall = query.Amount() - available
	}

	return response, nil
}
