package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery retrieves the carrier's tracking history for a shipment.
// Tracking data is read through to the carrier on demand and never stored.
type TrackShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery creates a tracking query for one shipment.
func NewTrackShipmentQuery(shipmentID kernel.UUID) (TrackShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return TrackShipmentQuery{}, err
	}

	return TrackShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to track.
func (q TrackShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}
