package shipment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrAdminNoteIsNotConstructed is returned when an AdminNote was not created
	// via NewAdminNote or RestoreAdminNote.
	ErrAdminNoteIsNotConstructed = errors.New("AdminNote must be created via NewAdminNote or RestoreAdminNote")

	// ErrNoteTextIsRequired is returned when the note text is empty.
	ErrNoteTextIsRequired = errors.New("note text is required")
)

// AdminNote is an immutable, timestamped free-text audit entry attached to a
// shipment. Notes are append-only; no update or delete operation exists.
type AdminNote struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	text       string
	author     string
	createdAt  time.Time

	isConstructed bool
}

// NewAdminNote creates an audit note for a shipment.
func NewAdminNote(id, shipmentID kernel.UUID, text, author string, createdAt time.Time) (*AdminNote, error) {
	if err := errors.Join(id.Validate(), shipmentID.Validate()); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrNoteTextIsRequired
	}

	return &AdminNote{
		id:            id,
		shipmentID:    shipmentID,
		text:          text,
		author:        author,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreAdminNote reconstructs a note from persistence.
func RestoreAdminNote(id, shipmentID kernel.UUID, text, author string, createdAt time.Time) (*AdminNote, error) {
	return NewAdminNote(id, shipmentID, text, author, createdAt)
}

// Validate ensures the AdminNote was created through a factory method.
func (n *AdminNote) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrAdminNoteIsNotConstructed
	}
	return nil
}

// ID returns the note identifier.
func (n *AdminNote) ID() kernel.UUID { return n.id }

// ShipmentID returns the owning shipment's identifier.
func (n *AdminNote) ShipmentID() kernel.UUID { return n.shipmentID }

// Text returns the note body.
func (n *AdminNote) Text() string { return n.text }

// Author returns the reference of the note's author.
func (n *AdminNote) Author() string { return n.author }

// CreatedAt returns when the note was written.
func (n *AdminNote) CreatedAt() time.Time { return n.createdAt }
