package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPaid)
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), aggregate.ID(), "ups", "fragile", "ops")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	estimate := time.Now().UTC().Add(72 * time.Hour)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		shipmentRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once(),
		gateway.On("CreateShipment", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
			Return(ports.CarrierShipment{TrackingNumber: "1Z999", EstimatedDelivery: estimate}, nil).Once(),
		shipmentRepo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		shipmentRepo.On("AppendNote", mock.Anything, mock.AnythingOfType("*shipment.AdminNote")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	tracking, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "1Z999", tracking)
	shipmentRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_UnsupportedCarrier(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), "pigeon", "", "ops")

	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "pigeon").Return(nil, false).Once()
	registry.On("SupportedCarriers").Return([]string{"fedex", "ups"}).Once()

	factory := new(MockShipmentUoWFactory)

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrUnsupportedCarrier)

	var carrierErr *commands.UnsupportedCarrierError
	require.ErrorAs(t, err, &carrierErr)
	assert.Equal(t, "pigeon", carrierErr.CarrierID)
	assert.Equal(t, []string{"fedex", "ups"}, carrierErr.Supported)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_OrderNotPaid(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPending)
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), aggregate.ID(), "ups", "", "ops")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ShipmentRepository").Return(new(MockShipmentRepository)).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotPaid)
	gateway.AssertNotCalled(t, "CreateShipment", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_ShipmentAlreadyExists(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPaid)
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), aggregate.ID(), "ups", "", "ops")

	tracking := "1Z111"
	existing, err := shipment.RestoreShipment(
		kernel.NewUUID(), aggregate.ID(), "fedex", &tracking,
		shipment.StatusShipped, nil, nil, nil, "", 2,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		shipmentRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrShipmentAlreadyExists)

	var existsErr *commands.ShipmentAlreadyExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, "1Z111", existsErr.TrackingNumber)
	gateway.AssertNotCalled(t, "CreateShipment", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_CarrierFailure(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPaid)
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), aggregate.ID(), "ups", "", "ops")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		shipmentRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once(),
		gateway.On("CreateShipment", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
			Return(ports.CarrierShipment{}, errors.New("api 503")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCarrierUnavailable)
	shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_GatewayTimeout(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderInStatus(t, order.StatusPaid)
	cmd, _ := commands.NewCreateShipmentCommand(kernel.NewUUID(), aggregate.ID(), "ups", "", "ops")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	gateway := new(MockCarrierGateway)
	registry := new(MockCarrierRegistry)
	registry.On("Lookup", "ups").Return(gateway, true).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		shipmentRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once(),
		gateway.On("CreateShipment", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
			Return(ports.CarrierShipment{}, context.DeadlineExceeded).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, registry)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrGatewayTimeout)
	shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
