// Package orderrepo provides data transfer objects and mapping functions for
// order persistence, converting between the order aggregate and its
// relational representation.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs the optimistic concurrency check in Update.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"uniqueIndex"`
	UserID           uuid.UUID  `gorm:"type:uuid;index"`
	DealerID         *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal         int64
	Tax              int64
	Shipping         int64
	Discount         int64
	Currency         string
	Status           int `gorm:"index"`
	ProductionStatus int
	PaidAt           *time.Time
	ShippedAt        *time.Time
	CancelledAt      *time.Time
	Version          int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusLogDTO represents one append-only audit row recording a transition on
// either the status or the production axis of an order.
type StatusLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Axis       string
	FromStatus string `gorm:"column:from_status"`
	ToStatus   string `gorm:"column:to_status"`
	Actor      string
	ChangedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for order status log entries.
func (StatusLogDTO) TableName() string {
	return "order_status_logs"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var dealerID *uuid.UUID
	if id := aggregate.DealerID(); id != nil {
		raw := id.Bytes()
		dealerID = &raw
	}

	totals := aggregate.Totals()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		UserID:           aggregate.UserID().Bytes(),
		DealerID:         dealerID,
		Subtotal:         totals.Subtotal(),
		Tax:              totals.Tax(),
		Shipping:         totals.Shipping(),
		Discount:         totals.Discount(),
		Currency:         totals.Currency(),
		Status:           int(aggregate.Status()),
		ProductionStatus: int(aggregate.ProductionStatus()),
		PaidAt:           aggregate.PaidAt(),
		ShippedAt:        aggregate.ShippedAt(),
		CancelledAt:      aggregate.CancelledAt(),
		Version:          aggregate.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var dealerID *kernel.UUID
	if dto.DealerID != nil {
		dID, dealerErr := kernel.UUIDFromBytes((*dto.DealerID)[:])
		if dealerErr != nil {
			return nil, dealerErr
		}
		dealerID = &dID
	}

	totals, err := order.NewTotals(dto.Subtotal, dto.Tax, dto.Shipping, dto.Discount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		userID,
		dealerID,
		totals,
		order.Status(dto.Status),
		order.ProductionStatus(dto.ProductionStatus),
		dto.PaidAt,
		dto.ShippedAt,
		dto.CancelledAt,
		dto.Version,
	)
}

func logFromDomain(entry *order.StatusLog) StatusLogDTO {
	return StatusLogDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		Axis:       entry.Axis(),
		FromStatus: entry.From(),
		ToStatus:   entry.To(),
		Actor:      entry.Actor(),
		ChangedAt:  entry.ChangedAt(),
	}
}

func logToDomain(dto StatusLogDTO) (*order.StatusLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusLog(id, orderID, dto.Axis, dto.FromStatus, dto.ToStatus, dto.Actor, dto.ChangedAt)
}
