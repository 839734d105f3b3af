package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDelayedShipmentsQueryHandler lists shipments past their delivery
// estimate that have neither been delivered nor returned.
type GetDelayedShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetDelayedShipmentsQueryHandler creates a handler for delayed shipment queries.
// Requires a GORM database connection for query execution.
func NewGetDelayedShipmentsQueryHandler(db *gorm.DB) GetDelayedShipmentsQueryHandler {
	return GetDelayedShipmentsQueryHandler{db: db}
}

// Handle executes the query against the current time.
// Results are sorted by estimate, most overdue first.
func (h GetDelayedShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetDelayedShipmentsQuery,
) ([]GetDelayedShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetDelayedShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			carrier_id,
			tracking_number,
			status,
			estimated_delivery
		FROM shipments
		WHERE estimated_delivery < ?
		  AND status NOT IN (?, ?)
		ORDER BY estimated_delivery
	`, time.Now().UTC(), shipment.StatusDelivered, shipment.StatusReturned).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, orderID    uuid.UUID
			carrierID      string
			trackingNumber sql.NullString
			status         int
			estimate       time.Time
		)

		if err = rows.Scan(&id, &orderID, &carrierID, &trackingNumber, &status, &estimate); err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderUUID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		shipments = append(shipments, GetDelayedShipmentsQueryResponse{
			ID:                shipmentID,
			OrderID:           orderUUID,
			CarrierID:         carrierID,
			TrackingNumber:    trackingNumber.String,
			Status:            shipment.Status(status).String(),
			EstimatedDelivery: estimate,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
