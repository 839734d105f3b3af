package carrier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var _ ports.CarrierGateway = (*ManualGateway)(nil)

// ManualGateway serves carriers without an API, such as local couriers or
// dealer pickup. Tracking numbers are generated locally and the delivery
// estimate is a fixed lead time from creation. Cancellation always succeeds
// because there is no external party to decline it.
type ManualGateway struct {
	prefix   string
	leadTime time.Duration
}

// NewManualGateway creates a gateway issuing tracking numbers with the given
// prefix and estimating delivery leadTime after creation.
//
// Example:
//
//	gateway, err := carrier.NewManualGateway("LOCAL", 48*time.Hour)
func NewManualGateway(prefix string, leadTime time.Duration) (*ManualGateway, error) {
	if prefix == "" {
		return nil, errs.NewValueIsRequiredError("prefix")
	}
	if leadTime <= 0 {
		return nil, errs.NewValueIsInvalidError("leadTime")
	}

	return &ManualGateway{
		prefix:   prefix,
		leadTime: leadTime,
	}, nil
}

// CreateShipment issues a local tracking number for the shipment.
func (g *ManualGateway) CreateShipment(_ context.Context, aggregate *shipment.Shipment) (ports.CarrierShipment, error) {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])

	return ports.CarrierShipment{
		TrackingNumber:    fmt.Sprintf("%s-%s", g.prefix, suffix),
		EstimatedDelivery: time.Now().UTC().Add(g.leadTime),
	}, nil
}

// TrackShipment returns a single synthetic event. Manual carriers have no
// event feed; status is maintained through the admin endpoints instead.
func (g *ManualGateway) TrackShipment(_ context.Context, aggregate *shipment.Shipment) ([]ports.TrackingEvent, error) {
	trackingNumber, err := confirmedTrackingNumber(aggregate)
	if err != nil {
		return nil, err
	}

	return []ports.TrackingEvent{
		{
			Status:      "registered",
			Description: fmt.Sprintf("shipment %s registered for manual handling", trackingNumber),
			OccurredAt:  time.Now().UTC(),
		},
	}, nil
}

// CancelShipment always accepts the cancellation.
func (g *ManualGateway) CancelShipment(_ context.Context, aggregate *shipment.Shipment) (bool, error) {
	if _, err := confirmedTrackingNumber(aggregate); err != nil {
		return false, err
	}
	return true, nil
}
