package ledgerrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/ledgerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// LedgerRepositoryIntegrationTestSuite verifies balance persistence and the
// row-lock serialization of concurrent ledger mutations.
type LedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *ledgerrepo.GormLedgerRepository
	tracker    *MockAggregateTracker
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&ledgerrepo.DealerBalanceDTO{}, &ledgerrepo.TransactionDTO{}))
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE dealer_balances, ledger_transactions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = ledgerrepo.NewGormLedgerRepository(suite.db, suite.tracker)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGetForUpdate_CreatesBalanceLazily() {
	ctx := context.Background()
	dealerID := kernel.NewUUID()

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	repo := ledgerrepo.NewGormLedgerRepository(tx, suite.tracker)

	balance, err := repo.GetForUpdate(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Commit().Error)

	suite.True(balance.DealerID().IsEqual(dealerID))
	suite.Equal(int64(0), balance.Balance())
	suite.Equal(int64(0), balance.CreditLimit())

	persisted, err := suite.repository.Get(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Equal(int64(0), persisted.Balance())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestCreditRoundTrip() {
	ctx := context.Background()
	dealerID := kernel.NewUUID()

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	repo := ledgerrepo.NewGormLedgerRepository(tx, suite.tracker)

	balance, err := repo.GetForUpdate(ctx, dealerID)
	suite.Require().NoError(err)

	record, err := balance.AddCredit(kernel.NewUUID(), 25_000, "wire transfer", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Update(ctx, balance))
	suite.Require().NoError(repo.AppendTransaction(ctx, record))
	suite.Require().NoError(tx.Commit().Error)

	persisted, err := suite.repository.Get(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Equal(int64(25_000), persisted.Balance())
	suite.NotNil(persisted.LastTransactionAt())

	records, err := suite.repository.GetTransactions(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(ledger.TransactionCredit, records[0].Type())
	suite.Equal(int64(25_000), records[0].Amount())
	suite.Equal(int64(25_000), records[0].ResultingBalance())
}

// Two debits race for credit that only covers one of them. The FOR UPDATE
// lock must serialize the check-then-debit sequences so exactly one wins.
func (suite *LedgerRepositoryIntegrationTestSuite) TestConcurrentDebits_Serialized() {
	ctx := context.Background()
	dealerID := kernel.NewUUID()

	setup := suite.db.Begin()
	suite.Require().NoError(setup.Error)
	setupRepo := ledgerrepo.NewGormLedgerRepository(setup, suite.tracker)
	balance, err := setupRepo.GetForUpdate(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Require().NoError(balance.UpdateCreditLimit(50_000))
	suite.Require().NoError(setupRepo.Update(ctx, balance))
	suite.Require().NoError(setup.Commit().Error)

	debit := func() error {
		tx := suite.db.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		defer tx.Rollback()

		repo := ledgerrepo.NewGormLedgerRepository(tx, suite.tracker)
		locked, lockErr := repo.GetForUpdate(ctx, dealerID)
		if lockErr != nil {
			return lockErr
		}

		record, debitErr := locked.Debit(kernel.NewUUID(), 40_000, "order", time.Now().UTC())
		if debitErr != nil {
			return debitErr
		}
		if updateErr := repo.Update(ctx, locked); updateErr != nil {
			return updateErr
		}
		if appendErr := repo.AppendTransaction(ctx, record); appendErr != nil {
			return appendErr
		}
		return tx.Commit().Error
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = debit()
		}(i)
	}
	wg.Wait()

	succeeded, limited := 0, 0
	for _, resultErr := range results {
		switch {
		case resultErr == nil:
			succeeded++
		default:
			suite.Require().ErrorIs(resultErr, ledger.ErrCreditLimitExceeded)
			limited++
		}
	}
	suite.Equal(1, succeeded, "exactly one debit must win")
	suite.Equal(1, limited, "the loser must fail the availability check")

	persisted, err := suite.repository.Get(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Equal(int64(-40_000), persisted.Balance())

	records, err := suite.repository.GetTransactions(ctx, dealerID)
	suite.Require().NoError(err)
	suite.Len(records, 1)
}

func TestLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryIntegrationTestSuite))
}
