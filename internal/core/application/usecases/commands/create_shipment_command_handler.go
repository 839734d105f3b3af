package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateShipmentCommandHandler orchestrates the hand-over of a paid order to
// a carrier. Checks preconditions, calls the carrier gateway, and persists the
// shipment with its tracking number only when the carrier accepted it.
//
// Precondition failures and gateway failures leave no trace: no shipment row
// is written and the order is untouched.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	registry   ports.CarrierRegistry
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory, registry ports.CarrierRegistry,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the shipment creation command and returns the carrier's
// tracking number on success.
//
// Fails with ErrOrderNotPaid when the order has not reached paid status, with
// ShipmentAlreadyExistsError when the order is already covered (carrying the
// existing tracking number), and with UnsupportedCarrierError for unknown
// carrier identifiers. Gateway failures map to ErrGatewayTimeout when the
// context expired, CarrierError otherwise.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	gateway, ok := h.registry.Lookup(cmd.CarrierID())
	if !ok {
		return "", NewUnsupportedCarrierError(cmd.CarrierID(), h.registry.SupportedCarriers())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipmentRepo := uow.ShipmentRepository()

	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}
	if orderAggregate.Status() != order.StatusPaid {
		return "", fmt.Errorf("%w: order %s is %s", ErrOrderNotPaid, cmd.OrderID(), orderAggregate.Status())
	}

	existing, err := shipmentRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return "", err
	}
	if existing != nil {
		tracking := ""
		if existing.TrackingNumber() != nil {
			tracking = *existing.TrackingNumber()
		}
		return "", NewShipmentAlreadyExistsError(cmd.OrderID().String(), tracking)
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), cmd.OrderID(), cmd.CarrierID(), cmd.Notes())
	if err != nil {
		return "", err
	}

	carrierShipment, err := gateway.CreateShipment(ctx, aggregate)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %s: %s", ErrGatewayTimeout, cmd.CarrierID(), err)
		}
		return "", NewCarrierError(cmd.CarrierID(), err)
	}

	if err = aggregate.ConfirmCarrier(carrierShipment.TrackingNumber, carrierShipment.EstimatedDelivery); err != nil {
		return "", err
	}

	if err = shipmentRepo.Add(ctx, aggregate); err != nil {
		return "", err
	}

	note, err := shipment.NewAdminNote(
		kernel.NewUUID(),
		aggregate.ID(),
		fmt.Sprintf("shipment created with carrier %s, tracking %s", cmd.CarrierID(), carrierShipment.TrackingNumber),
		cmd.Actor(),
		time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}

	if err = shipmentRepo.AppendNote(ctx, note); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return carrierShipment.TrackingNumber, nil
}
