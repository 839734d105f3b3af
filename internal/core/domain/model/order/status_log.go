package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrStatusLogIsNotConstructed is returned when a StatusLog was not created
	// via NewStatusLog or RestoreStatusLog.
	ErrStatusLogIsNotConstructed = errors.New("StatusLog must be created via NewStatusLog or RestoreStatusLog")

	// ErrEmptyStatusChange is returned when a StatusLog is built from an empty change.
	ErrEmptyStatusChange = errors.New("status change is empty")
)

// StatusLog is one append-only audit row recording a single transition on
// either the status or the production axis. Rows are never updated or
// deleted; the repository exposes only append and list operations.
type StatusLog struct {
	id        kernel.UUID
	orderID   kernel.UUID
	axis      string
	from      string
	to        string
	actor     string
	changedAt time.Time

	isConstructed bool
}

// NewStatusLog creates a log row for an applied status change.
func NewStatusLog(id kernel.UUID, change StatusChange) (*StatusLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := change.OrderID.Validate(); err != nil {
		return nil, err
	}
	if change.From == "" || change.To == "" {
		return nil, ErrEmptyStatusChange
	}

	return &StatusLog{
		id:            id,
		orderID:       change.OrderID,
		axis:          change.Axis,
		from:          change.From,
		to:            change.To,
		actor:         change.Actor,
		changedAt:     change.OccurredAt,
		isConstructed: true,
	}, nil
}

// RestoreStatusLog reconstructs a log row from persistence.
func RestoreStatusLog(id, orderID kernel.UUID, axis, from, to, actor string, changedAt time.Time) (*StatusLog, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &StatusLog{
		id:            id,
		orderID:       orderID,
		axis:          axis,
		from:          from,
		to:            to,
		actor:         actor,
		changedAt:     changedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the StatusLog was created through a factory method.
func (l *StatusLog) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrStatusLogIsNotConstructed
	}
	return nil
}

// ID returns the log row identifier.
func (l *StatusLog) ID() kernel.UUID { return l.id }

// OrderID returns the owning order's identifier.
func (l *StatusLog) OrderID() kernel.UUID { return l.orderID }

// Axis returns the transition axis, AxisStatus or AxisProduction.
func (l *StatusLog) Axis() string { return l.axis }

// From returns the previous state name.
func (l *StatusLog) From() string { return l.from }

// To returns the new state name.
func (l *StatusLog) To() string { return l.to }

// Actor returns the reference of whoever requested the transition.
func (l *StatusLog) Actor() string { return l.actor }

// ChangedAt returns when the transition was applied.
func (l *StatusLog) ChangedAt() time.Time { return l.changedAt }
