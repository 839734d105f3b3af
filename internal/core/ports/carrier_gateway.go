package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/shipment"
)

// CarrierShipment is the carrier's answer to a shipment creation request.
type CarrierShipment struct {
	TrackingNumber    string
	EstimatedDelivery time.Time
}

// TrackingEvent is one entry of a carrier's tracking history.
type TrackingEvent struct {
	Status      string
	Description string
	Location    string
	OccurredAt  time.Time
}

// CarrierGateway is the capability contract implemented once per carrier.
// Gateway calls may block on network I/O and honor ctx cancellation; they
// never mutate domain state themselves.
//
// New carriers are added by registering a new implementation in the
// CarrierRegistry, never by modifying the engines.
type CarrierGateway interface {
	// CreateShipment registers the shipment with the carrier and returns the
	// tracking number and delivery estimate.
	CreateShipment(ctx context.Context, s *shipment.Shipment) (CarrierShipment, error)

	// TrackShipment returns the carrier's tracking history for the shipment.
	TrackShipment(ctx context.Context, s *shipment.Shipment) ([]TrackingEvent, error)

	// CancelShipment asks the carrier to cancel the shipment. The bool reports
	// whether the carrier accepted the cancellation.
	CancelShipment(ctx context.Context, s *shipment.Shipment) (bool, error)
}

// CarrierRegistry maps carrier identifiers to gateway implementations.
// Unknown identifiers never reach a gateway call.
type CarrierRegistry interface {
	// Lookup returns the gateway registered under id.
	Lookup(id string) (CarrierGateway, bool)

	// SupportedCarriers returns the sorted identifiers of all registered carriers.
	SupportedCarriers() []string
}
