package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyTerminal is returned when a transition is requested on an order
	// in a terminal state (delivered, cancelled, refunded).
	ErrAlreadyTerminal = errors.New("order is in a terminal state")

	// ErrNotYetPaid is returned when a production transition is requested before
	// the order has reached the paid status.
	ErrNotYetPaid = errors.New("order has not been paid")

	// ErrNumberIsRequired is returned when an order number is empty.
	ErrNumberIsRequired = errors.New("order number is required")
)

// InvalidTransitionError reports a status edge outside the allowed set,
// on either the status or the production axis.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Axis names for StatusChange and status log rows.
const (
	AxisStatus     = "status"
	AxisProduction = "production"
)

// StatusChange describes one applied transition. It feeds both the append-only
// status log and the outbound event published to the notification collaborator.
type StatusChange struct {
	OrderID    kernel.UUID
	Axis       string
	From       string
	To         string
	Actor      string
	OccurredAt time.Time
}

// Order is the aggregate root of the fulfillment lifecycle. It owns both
// state machines (status and production status) and the monetary totals.
//
// Invariants:
//   - total = subtotal + tax + shipping - discount, always >= 0
//   - status transitions follow the fixed edge table in Status
//   - production transitions are monotonic and require the order to be paid
//   - paid/shipped/cancelled timestamps are set once, never cleared
//   - once terminal, the order is immutable except its audit log
type Order struct {
	id               kernel.UUID
	number           string
	userID           kernel.UUID
	dealerID         *kernel.UUID
	totals           Totals
	status           Status
	productionStatus ProductionStatus
	paidAt           *time.Time
	shippedAt        *time.Time
	cancelledAt      *time.Time
	version          int64

	isConstructed bool
}

// NewOrder creates an order in the cart status with production pending.
// dealerID is nil for retail orders and set for B2B dealer-created orders.
func NewOrder(id kernel.UUID, number string, userID kernel.UUID, dealerID *kernel.UUID, totals Totals) (*Order, error) {
	o := &Order{
		status:           StatusCart,
		productionStatus: ProductionPending,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setDealerID(dealerID),
		o.setTotals(totals),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It revalidates the
// identity and totals but accepts any valid status pair, since historical
// states are legal by definition.
func RestoreOrder(
	id kernel.UUID,
	number string,
	userID kernel.UUID,
	dealerID *kernel.UUID,
	totals Totals,
	status Status,
	productionStatus ProductionStatus,
	paidAt, shippedAt, cancelledAt *time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		paidAt:        paidAt,
		shippedAt:     shippedAt,
		cancelledAt:   cancelledAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setDealerID(dealerID),
		o.setTotals(totals),
		status.Validate(),
		productionStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.productionStatus = productionStatus
	return o, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number. Immutable once assigned.
func (o *Order) Number() string {
	return o.number
}

// UserID returns the owning user's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// DealerID returns the creating dealer's identifier, or nil for retail orders.
func (o *Order) DealerID() *kernel.UUID {
	return o.dealerID
}

// Totals returns the monetary totals of the order.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// ProductionStatus returns the current production stage.
func (o *Order) ProductionStatus() ProductionStatus {
	return o.productionStatus
}

// PaidAt returns the payment timestamp, nil until the order is paid.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// ShippedAt returns the shipping timestamp, nil until the order is shipped.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// CancelledAt returns the cancellation timestamp, nil unless cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int64 {
	return o.version
}

// TransitionTo moves the order along its lifecycle state machine.
//
// Re-requesting the current status is an idempotent no-op: the method returns
// (nil, nil) and the caller must not append a log row or publish an event.
// A terminal order rejects every other target with ErrAlreadyTerminal; an
// edge outside the allowed set fails with InvalidTransitionError. On success
// the corresponding timestamp (paidAt/shippedAt/cancelledAt) is set if not
// already set, and the returned StatusChange describes the applied edge.
func (o *Order) TransitionTo(target Status, actor string, now time.Time) (*StatusChange, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if target == o.status {
		return nil, nil
	}

	if o.status.IsTerminal() {
		return nil, ErrAlreadyTerminal
	}

	if !o.status.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{From: o.status.String(), To: target.String()}
	}

	from := o.status
	o.status = target

	switch target {
	case StatusPaid:
		if o.paidAt == nil {
			o.paidAt = &now
		}
	case StatusShipped:
		if o.shippedAt == nil {
			o.shippedAt = &now
		}
	case StatusCancelled:
		if o.cancelledAt == nil {
			o.cancelledAt = &now
		}
	}

	return &StatusChange{
		OrderID:    o.id,
		Axis:       AxisStatus,
		From:       from.String(),
		To:         target.String(),
		Actor:      actor,
		OccurredAt: now,
	}, nil
}

// AdvanceProduction moves the production axis one stage forward.
//
// The order must have reached the paid status (ErrNotYetPaid otherwise).
// Re-requesting the current stage is an idempotent no-op returning (nil, nil).
// Any target other than the immediately next stage fails with
// InvalidTransitionError.
func (o *Order) AdvanceProduction(target ProductionStatus, actor string, now time.Time) (*StatusChange, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if !o.status.AtLeastPaid() {
		return nil, ErrNotYetPaid
	}

	if target == o.productionStatus {
		return nil, nil
	}

	if !o.productionStatus.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{From: o.productionStatus.String(), To: target.String()}
	}

	from := o.productionStatus
	o.productionStatus = target

	return &StatusChange{
		OrderID:    o.id,
		Axis:       AxisProduction,
		From:       from.String(),
		To:         target.String(),
		Actor:      actor,
		OccurredAt: now,
	}, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setDealerID(dealerID *kernel.UUID) error {
	if dealerID == nil {
		return nil
	}
	if err := dealerID.Validate(); err != nil {
		return fmt.Errorf("dealer id: %w", err)
	}
	o.dealerID = dealerID
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if err := totals.Validate(); err != nil {
		return err
	}
	o.totals = totals
	return nil
}
