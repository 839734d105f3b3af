package commands

import (
	"errors"
	"fmt"
	"strings"
)

// Orchestration errors raised by command handlers when a precondition or an
// external collaborator fails. Domain packages own the errors of their own
// state machines; everything below concerns the coordination between them.
var (
	// ErrOrderNotPaid is returned when a shipment is requested for an order
	// that has not reached the paid status.
	ErrOrderNotPaid = errors.New("order is not paid")

	// ErrShipmentAlreadyExists is the sentinel wrapped by ShipmentAlreadyExistsError.
	ErrShipmentAlreadyExists = errors.New("shipment already exists for order")

	// ErrUnsupportedCarrier is the sentinel wrapped by UnsupportedCarrierError.
	ErrUnsupportedCarrier = errors.New("carrier is not supported")

	// ErrCarrierUnavailable is the sentinel wrapped by CarrierError.
	ErrCarrierUnavailable = errors.New("carrier request failed")

	// ErrGatewayTimeout is returned when a carrier call is abandoned because
	// the caller's context expired or was cancelled.
	ErrGatewayTimeout = errors.New("carrier request timed out")

	// ErrCancellationFailed is the sentinel wrapped by CancellationFailedError.
	ErrCancellationFailed = errors.New("carrier declined cancellation")
)

// ShipmentAlreadyExistsError reports the tracking number of the shipment that
// already covers the order, so callers can surface it instead of retrying.
type ShipmentAlreadyExistsError struct {
	OrderID        string
	TrackingNumber string
}

func (e *ShipmentAlreadyExistsError) Error() string {
	if e.TrackingNumber == "" {
		return fmt.Sprintf("shipment already exists for order: %s", e.OrderID)
	}
	return fmt.Sprintf("shipment already exists for order: %s (tracking number: %s)", e.OrderID, e.TrackingNumber)
}

// Unwrap allows errors.Is checks against ErrShipmentAlreadyExists.
func (e *ShipmentAlreadyExistsError) Unwrap() error {
	return ErrShipmentAlreadyExists
}

// NewShipmentAlreadyExistsError creates an error for a duplicate shipment request.
func NewShipmentAlreadyExistsError(orderID, trackingNumber string) *ShipmentAlreadyExistsError {
	return &ShipmentAlreadyExistsError{OrderID: orderID, TrackingNumber: trackingNumber}
}

// UnsupportedCarrierError reports a carrier identifier with no registered
// gateway, together with the identifiers that are registered.
type UnsupportedCarrierError struct {
	CarrierID string
	Supported []string
}

func (e *UnsupportedCarrierError) Error() string {
	return fmt.Sprintf("carrier is not supported: %s (supported: %s)", e.CarrierID, strings.Join(e.Supported, ", "))
}

// Unwrap allows errors.Is checks against ErrUnsupportedCarrier.
func (e *UnsupportedCarrierError) Unwrap() error {
	return ErrUnsupportedCarrier
}

// NewUnsupportedCarrierError creates an error for an unregistered carrier identifier.
func NewUnsupportedCarrierError(carrierID string, supported []string) *UnsupportedCarrierError {
	return &UnsupportedCarrierError{CarrierID: carrierID, Supported: supported}
}

// CarrierError wraps a failure reported by a carrier gateway. The shipment
// state is left untouched when this error is returned.
type CarrierError struct {
	CarrierID string
	Cause     error
}

func (e *CarrierError) Error() string {
	return fmt.Sprintf("carrier request failed: %s: %s", e.CarrierID, e.Cause)
}

// Unwrap allows errors.Is checks against ErrCarrierUnavailable and the cause.
func (e *CarrierError) Unwrap() error {
	return ErrCarrierUnavailable
}

// NewCarrierError creates an error wrapping a carrier gateway failure.
func NewCarrierError(carrierID string, cause error) *CarrierError {
	return &CarrierError{CarrierID: carrierID, Cause: cause}
}

// CancellationFailedError reports that the carrier declined or failed a
// cancellation request. The shipment keeps its current status.
type CancellationFailedError struct {
	CarrierID string
	Cause     error
}

func (e *CancellationFailedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("carrier declined cancellation: %s", e.CarrierID)
	}
	return fmt.Sprintf("carrier declined cancellation: %s: %s", e.CarrierID, e.Cause)
}

// Unwrap allows errors.Is checks against ErrCancellationFailed.
func (e *CancellationFailedError) Unwrap() error {
	return ErrCancellationFailed
}

// NewCancellationFailedError creates an error for a rejected cancellation.
// cause may be nil when the carrier answered but declined.
func NewCancellationFailedError(carrierID string, cause error) *CancellationFailedError {
	return &CancellationFailedError{CarrierID: carrierID, Cause: cause}
}
