package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Preparing ──> Shipped ──> Delivered
//	    │            │
//	    └────────────┴──> Returned (from any non-delivered state)
//
// Delivered and Returned are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPreparing is the initial status of a newly created shipment.
	StatusPreparing

	// StatusShipped indicates the carrier picked up the shipment.
	StatusShipped

	// StatusDelivered indicates the shipment reached the customer. Terminal.
	StatusDelivered

	// StatusReturned indicates the shipment was cancelled or sent back. Terminal.
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPreparing: "preparing",
		StatusShipped:   "shipped",
		StatusDelivered: "delivered",
		StatusReturned:  "returned",
	}
}

// Validate checks that the Status is a recognized lifecycle value.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("shipment status is invalid",
		fmt.Errorf("%q is not a valid shipment status", s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned
}

// CanTransitionTo reports whether the edge s -> target is allowed.
// Returned is reachable from any non-delivered, non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusReturned {
		return true
	}
	switch s {
	case StatusPreparing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	default:
		return false
	}
}
