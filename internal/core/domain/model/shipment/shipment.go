package shipment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// via NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid shipment status transition")

	// ErrAlreadyDelivered is returned when a delivered shipment is cancelled.
	ErrAlreadyDelivered = errors.New("shipment is already delivered")

	// ErrCarrierIsRequired is returned when the carrier identifier is empty.
	ErrCarrierIsRequired = errors.New("carrier identifier is required")

	// ErrTrackingNumberIsSet guards the set-once tracking number.
	ErrTrackingNumberIsSet = errors.New("tracking number is already set")
)

// InvalidTransitionError reports a shipment status edge outside the allowed set.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid shipment status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// StatusChange describes one applied shipment transition, feeding the
// outbound event to the notification collaborator.
type StatusChange struct {
	ShipmentID kernel.UUID
	From       string
	To         string
	Actor      string
	OccurredAt time.Time
}

// Shipment is the aggregate root for carrier-tracked delivery of one order.
// Each order has at most one shipment; shipments are never destroyed, their
// terminal states are delivered and returned.
//
// Invariants:
//   - the tracking number is set once known and never cleared
//   - shippedAt/deliveredAt are set the first time their status is reached
//   - a delivered shipment cannot be cancelled
type Shipment struct {
	id                kernel.UUID
	orderID           kernel.UUID
	carrierID         string
	trackingNumber    *string
	status            Status
	estimatedDelivery *time.Time
	shippedAt         *time.Time
	deliveredAt       *time.Time
	notes             string
	version           int64

	isConstructed bool
}

// NewShipment creates a shipment in the preparing status. The tracking number
// and estimated delivery stay unset until the carrier confirms creation.
func NewShipment(id, orderID kernel.UUID, carrierID, notes string) (*Shipment, error) {
	s := &Shipment{
		status:        StatusPreparing,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierID(carrierID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id, orderID kernel.UUID,
	carrierID string,
	trackingNumber *string,
	status Status,
	estimatedDelivery, shippedAt, deliveredAt *time.Time,
	notes string,
	version int64,
) (*Shipment, error) {
	s := &Shipment{
		trackingNumber:    trackingNumber,
		estimatedDelivery: estimatedDelivery,
		shippedAt:         shippedAt,
		deliveredAt:       deliveredAt,
		notes:             notes,
		version:           version,
		isConstructed:     true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierID(carrierID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = status
	return s, nil
}

// Validate ensures the Shipment was created through a factory method.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// OrderID returns the identifier of the shipped order.
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }

// CarrierID returns the identifier of the carrier handling the shipment.
func (s *Shipment) CarrierID() string { return s.carrierID }

// TrackingNumber returns the carrier tracking number, nil until known.
func (s *Shipment) TrackingNumber() *string { return s.trackingNumber }

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status { return s.status }

// EstimatedDelivery returns the carrier's delivery estimate, nil until known.
func (s *Shipment) EstimatedDelivery() *time.Time { return s.estimatedDelivery }

// ShippedAt returns when the shipment was first marked shipped.
func (s *Shipment) ShippedAt() *time.Time { return s.shippedAt }

// DeliveredAt returns when the shipment was first marked delivered.
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }

// Notes returns the free-text notes attached to the shipment.
func (s *Shipment) Notes() string { return s.notes }

// Version returns the optimistic concurrency version of the aggregate.
func (s *Shipment) Version() int64 { return s.version }

// ConfirmCarrier records the tracking number and delivery estimate returned
// by the carrier on shipment creation. The tracking number is set once;
// confirming twice fails with ErrTrackingNumberIsSet.
func (s *Shipment) ConfirmCarrier(trackingNumber string, estimatedDelivery time.Time) error {
	if s.trackingNumber != nil {
		return ErrTrackingNumberIsSet
	}
	if trackingNumber == "" {
		return errors.New("tracking number is empty")
	}

	s.trackingNumber = &trackingNumber
	s.estimatedDelivery = &estimatedDelivery
	return nil
}

// UpdateStatus moves the shipment along its lifecycle. Re-requesting the
// current status is an idempotent no-op returning (nil, nil). shippedAt and
// deliveredAt are stamped the first time their status is reached.
func (s *Shipment) UpdateStatus(target Status, actor string, now time.Time) (*StatusChange, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if target == s.status {
		return nil, nil
	}

	if !s.status.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{From: s.status.String(), To: target.String()}
	}

	from := s.status
	s.status = target

	switch target {
	case StatusShipped:
		if s.shippedAt == nil {
			s.shippedAt = &now
		}
	case StatusDelivered:
		if s.deliveredAt == nil {
			s.deliveredAt = &now
		}
	}

	return &StatusChange{
		ShipmentID: s.id,
		From:       from.String(),
		To:         target.String(),
		Actor:      actor,
		OccurredAt: now,
	}, nil
}

// MarkReturned transitions the shipment to returned after a successful
// carrier cancellation, recording the reason in the free-text notes.
// A delivered shipment fails with ErrAlreadyDelivered.
func (s *Shipment) MarkReturned(reason, actor string, now time.Time) (*StatusChange, error) {
	if s.status == StatusDelivered {
		return nil, ErrAlreadyDelivered
	}

	change, err := s.UpdateStatus(StatusReturned, actor, now)
	if err != nil {
		return nil, err
	}

	if reason != "" {
		if s.notes != "" {
			s.notes += "\n"
		}
		s.notes += "cancelled: " + reason
	}

	return change, nil
}

// Delayed reports whether the shipment missed its delivery estimate: the
// estimate is set, lies in the past, and the status is before delivered.
func (s *Shipment) Delayed(now time.Time) bool {
	if s.estimatedDelivery == nil {
		return false
	}
	if s.status == StatusDelivered || s.status == StatusReturned {
		return false
	}
	return s.estimatedDelivery.Before(now)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setCarrierID(carrierID string) error {
	if carrierID == "" {
		return ErrCarrierIsRequired
	}
	s.carrierID = carrierID
	return nil
}
