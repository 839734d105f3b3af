package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreShipmentInStatus(t, shipment.StatusShipped)
	cmd, _ := commands.NewCancelShipmentCommand(aggregate.ID(), "customer refused delivery", "support")

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	publisher := new(MockEventPublisher)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("CancelShipment", mock.Anything, aggregate).Return(true, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		shipmentRepo.On("AppendNote", mock.Anything, mock.AnythingOfType("*shipment.AdminNote")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishShipmentStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).
			Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelShipmentCommandHandler(factory, registry, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusReturned, aggregate.Status())
	assert.Contains(t, aggregate.Notes(), "customer refused delivery")
	shipmentRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreShipmentInStatus(t, shipment.StatusDelivered)
	cmd, _ := commands.NewCancelShipmentCommand(aggregate.ID(), "too late", "support")

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelShipmentCommandHandler(factory, registry, publisher)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrAlreadyDelivered)
	gateway.AssertNotCalled(t, "CancelShipment", mock.Anything, mock.Anything)
	registry.AssertNotCalled(t, "Lookup", mock.Anything)
}

func TestCancelShipmentCommandHandler_Handle_CarrierDeclines(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreShipmentInStatus(t, shipment.StatusShipped)
	cmd, _ := commands.NewCancelShipmentCommand(aggregate.ID(), "wrong address", "support")

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	publisher := new(MockEventPublisher)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("CancelShipment", mock.Anything, aggregate).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelShipmentCommandHandler(factory, registry, publisher)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCancellationFailed)
	assert.Equal(t, shipment.StatusShipped, aggregate.Status())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelShipmentCommandHandler_Handle_GatewayError(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreShipmentInStatus(t, shipment.StatusPreparing)
	cmd, _ := commands.NewCancelShipmentCommand(aggregate.ID(), "duplicate order", "support")

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	publisher := new(MockEventPublisher)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("CancelShipment", mock.Anything, aggregate).Return(false, errors.New("api 500")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelShipmentCommandHandler(factory, registry, publisher)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCancellationFailed)
	assert.Equal(t, shipment.StatusPreparing, aggregate.Status())
}
