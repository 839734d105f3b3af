package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreOrderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	totals, err := order.NewTotals(10_000, 800, 500, 0, "USD")
	require.NoError(t, err)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), "SO-1001", kernel.NewUUID(), nil, totals,
		status, order.ProductionPending, nil, nil, nil, 1,
	)
	require.NoError(t, err)
	return o
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPending)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusPaid, "payments-service")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		repo.On("AppendStatusLog", mock.Anything, mock.AnythingOfType("*order.StatusLog")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishOrderStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).
			Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, aggregate.Status())
	assert.NotNil(t, aggregate.PaidAt())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_NoOpOnSameStatus(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPaid)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusPaid, "payments-service")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "AppendStatusLog", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPending)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusDelivered, "ops")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "pending", transitionErr.From)
	assert.Equal(t, "delivered", transitionErr.To)
}

func TestTransitionOrderCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusCancelled)
	cmd, _ := commands.NewTransitionOrderCommand(aggregate.ID(), order.StatusPaid, "ops")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrAlreadyTerminal)
}

func TestTransitionOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewTransitionOrderCommand(id, order.StatusPaid, "ops")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(nil, errors.New("db down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionOrderCommand{}
	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
