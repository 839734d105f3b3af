package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
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

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusLogDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_logs").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	totals, err := order.NewTotals(10_000, 800, 500, 300, "USD")
	suite.Require().NoError(err)

	dealerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), "SO-"+kernel.NewUUID().String()[:8], kernel.NewUUID(), &dealerID, totals)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(testOrder.ID()))
	suite.Equal(testOrder.Number(), restored.Number())
	suite.True(restored.UserID().IsEqual(testOrder.UserID()))
	suite.Require().NotNil(restored.DealerID())
	suite.True(restored.DealerID().IsEqual(*testOrder.DealerID()))
	suite.Equal(order.StatusCart, restored.Status())
	suite.Equal(order.ProductionPending, restored.ProductionStatus())
	suite.Equal(testOrder.Totals().Total(), restored.Totals().Total())
	suite.Equal(int64(1), restored.Version())
	suite.Nil(restored.PaidAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitionAndBumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = loaded.TransitionTo(order.StatusPending, "checkout", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, reloaded.Status())
	suite.Equal(int64(2), reloaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = first.TransitionTo(order.StatusPending, "checkout", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.TransitionTo(order.StatusPending, "checkout", time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), reloaded.Version(), "stale write must not apply")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestStatusLog_AppendAndReadInOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	base := time.Now().UTC().Truncate(time.Microsecond)
	changes := []order.StatusChange{
		{OrderID: testOrder.ID(), Axis: order.AxisStatus, From: "cart", To: "pending", Actor: "checkout", OccurredAt: base},
		{OrderID: testOrder.ID(), Axis: order.AxisStatus, From: "pending", To: "paid", Actor: "payments", OccurredAt: base.Add(time.Minute)},
		{OrderID: testOrder.ID(), Axis: order.AxisProduction, From: "pending", To: "in_production", Actor: "factory", OccurredAt: base.Add(2 * time.Minute)},
	}

	for _, change := range changes {
		entry, err := order.NewStatusLog(kernel.NewUUID(), change)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.AppendStatusLog(ctx, entry))
	}

	entries, err := suite.repository.GetStatusLog(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)

	for i, entry := range entries {
		suite.Equal(changes[i].Axis, entry.Axis())
		suite.Equal(changes[i].From, entry.From())
		suite.Equal(changes[i].To, entry.To())
		suite.Equal(changes[i].Actor, entry.Actor())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestStatusLog_OtherOrdersExcluded() {
	ctx := context.Background()
	orderA := suite.createTestOrder()
	orderB := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, orderA))
	suite.Require().NoError(suite.repository.Add(ctx, orderB))

	entry, err := order.NewStatusLog(kernel.NewUUID(), order.StatusChange{
		OrderID: orderA.ID(), Axis: order.AxisStatus, From: "cart", To: "pending",
		Actor: "checkout", OccurredAt: time.Now().UTC(),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendStatusLog(ctx, entry))

	entries, err := suite.repository.GetStatusLog(ctx, orderB.ID())
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
