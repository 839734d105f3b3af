// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The unique index on order_id enforces the one-shipment-per-order
// rule at the storage level.
type ShipmentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CarrierID         string    `gorm:"index"`
	TrackingNumber    *string
	Status            int `gorm:"index"`
	EstimatedDelivery *time.Time `gorm:"index"`
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	Notes             string
	Version           int64
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AdminNoteDTO represents one append-only operational note on a shipment.
type AdminNoteDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;index"`
	Text       string
	Author     string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for shipment admin notes.
func (AdminNoteDTO) TableName() string {
	return "shipment_admin_notes"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		CarrierID:         aggregate.CarrierID(),
		TrackingNumber:    aggregate.TrackingNumber(),
		Status:            int(aggregate.Status()),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		ShippedAt:         aggregate.ShippedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		Notes:             aggregate.Notes(),
		Version:           aggregate.Version(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		orderID,
		dto.CarrierID,
		dto.TrackingNumber,
		shipment.Status(dto.Status),
		dto.EstimatedDelivery,
		dto.ShippedAt,
		dto.DeliveredAt,
		dto.Notes,
		dto.Version,
	)
}

func noteFromDomain(note *shipment.AdminNote) AdminNoteDTO {
	return AdminNoteDTO{
		ID:         note.ID().Bytes(),
		ShipmentID: note.ShipmentID().Bytes(),
		Text:       note.Text(),
		Author:     note.Author(),
		CreatedAt:  note.CreatedAt(),
	}
}

func noteToDomain(dto AdminNoteDTO) (*shipment.AdminNote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreAdminNote(id, shipmentID, dto.Text, dto.Author, dto.CreatedAt)
}
