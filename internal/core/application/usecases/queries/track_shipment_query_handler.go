package queries

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/ports"
)

// ErrTrackingUnavailable is returned when the carrier cannot currently answer
// a tracking request. The shipment itself is unaffected.
var ErrTrackingUnavailable = errors.New("tracking unavailable")

// TrackShipmentQueryHandler reads a shipment's tracking history through the
// carrier gateway. Unlike the other query handlers it needs the aggregate,
// not a projection, because the gateway contract works on shipments.
type TrackShipmentQueryHandler struct {
	shipments ports.ShipmentRepository
	registry  ports.CarrierRegistry
}

// NewTrackShipmentQueryHandler creates a handler for tracking queries.
func NewTrackShipmentQueryHandler(
	shipments ports.ShipmentRepository, registry ports.CarrierRegistry,
) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{
		shipments: shipments,
		registry:  registry,
	}
}

// Handle fetches the tracking history for the shipment.
// Carrier failures map to ErrTrackingUnavailable with the cause attached.
func (h TrackShipmentQueryHandler) Handle(
	ctx context.Context,
	query TrackShipmentQuery,
) ([]ports.TrackingEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.shipments.Get(ctx, query.ShipmentID())
	if err != nil {
		return nil, err
	}

	gateway, ok := h.registry.Lookup(aggregate.CarrierID())
	if !ok {
		return nil, fmt.Errorf("%w: no gateway for carrier %s", ErrTrackingUnavailable, aggregate.CarrierID())
	}

	events, err := gateway.TrackShipment(ctx, aggregate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTrackingUnavailable, err)
	}

	return events, nil
}
