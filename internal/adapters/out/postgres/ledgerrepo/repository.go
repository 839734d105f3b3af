package ledgerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultCurrency is assigned to balances created lazily on a dealer's first
// ledger operation.
const defaultCurrency = "USD"

// GormLedgerRepository implements LedgerRepository using GORM.
// Unlike the order and shipment repositories it relies on pessimistic row
// locks instead of version checks: all mutations of one dealer's balance go
// through GetForUpdate, which serializes them for the transaction's lifetime.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetForUpdate retrieves the dealer's balance under a FOR UPDATE lock,
// creating it lazily with zero balance and zero limit on first access.
// Must run inside a transaction; the lock is held until commit or rollback.
func (r *GormLedgerRepository) GetForUpdate(ctx context.Context, dealerID kernel.UUID) (*ledger.DealerBalance, error) {
	if err := dealerID.Validate(); err != nil {
		return nil, err
	}

	var dto DealerBalanceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "dealer_id = ?", dealerID.Bytes()).Error
	if err == nil {
		return toDomain(dto)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	aggregate, err := ledger.NewDealerBalance(kernel.NewUUID(), dealerID, defaultCurrency)
	if err != nil {
		return nil, err
	}

	// Two first-time accesses can race here; DoNothing plus the re-read under
	// lock makes exactly one row win.
	dto = fromDomain(aggregate)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "dealer_id"}}, DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "dealer_id = ?", dealerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Get retrieves the dealer's balance without locking.
func (r *GormLedgerRepository) Get(ctx context.Context, dealerID kernel.UUID) (*ledger.DealerBalance, error) {
	if err := dealerID.Validate(); err != nil {
		return nil, err
	}

	var dto DealerBalanceDTO
	if err := r.db.WithContext(ctx).First(&dto, "dealer_id = ?", dealerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dealer balance", dealerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists the mutated balance.
func (r *GormLedgerRepository) Update(ctx context.Context, aggregate *ledger.DealerBalance) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DealerBalanceDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dealer balance", aggregate.DealerID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AppendTransaction inserts one ledger record. Records are never updated or
// deleted; corrections happen as new records.
func (r *GormLedgerRepository) AppendTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(tx)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetTransactions retrieves all ledger records of a dealer, oldest first.
func (r *GormLedgerRepository) GetTransactions(ctx context.Context, dealerID kernel.UUID) ([]*ledger.Transaction, error) {
	if err := dealerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransactionDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "dealer_id = ?", dealerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*ledger.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := transactionToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}
