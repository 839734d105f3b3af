package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Cart ──> Pending ──> Paid ──> Shipped ──> Delivered
//	             │         │          │
//	             │         └──────────┴──> Refunded
//	             └── any non-terminal ───> Cancelled
//
// Delivered, Cancelled, and Refunded are terminal: no further transitions
// are allowed out of them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCart is the initial status of a newly created order.
	StatusCart

	// StatusPending indicates checkout completed and payment is awaited.
	StatusPending

	// StatusPaid indicates payment was confirmed by the payment collaborator.
	StatusPaid

	// StatusShipped indicates the order left the warehouse.
	StatusShipped

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before delivery. Terminal.
	StatusCancelled

	// StatusRefunded indicates a paid or shipped order was refunded. Terminal.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusCart:      "cart",
		StatusPending:   "pending",
		StatusPaid:      "paid",
		StatusShipped:   "shipped",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
		StatusRefunded:  "refunded",
	}
}

// statusTransitions is the fixed set of allowed forward edges. Cancellation
// edges are not listed; they are derived from IsTerminal in CanTransitionTo.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusCart:    {StatusPending},
		StatusPending: {StatusPaid},
		StatusPaid:    {StatusShipped, StatusRefunded},
		StatusShipped: {StatusDelivered, StatusRefunded},
	}
}

// Validate checks that the Status is one of the defined lifecycle values.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("paid", "cancelled", ...).
// Implements fmt.Stringer; safe on any value.
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
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// AtLeastPaid reports whether the order has reached payment, i.e. the status
// is paid or any state only reachable after payment.
func (s Status) AtLeastPaid() bool {
	switch s {
	case StatusPaid, StatusShipped, StatusDelivered, StatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the edge s -> target is in the allowed set.
// Cancellation is reachable from any non-terminal state. The same-status edge
// is not part of the table; idempotent re-application is handled by the
// aggregate, not the state machine.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	for _, next := range statusTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}
