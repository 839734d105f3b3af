package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DelayedShipmentJob watches for shipments past their delivery estimate.
// Runs every minute and logs a warning per overdue shipment so operations
// can chase the carrier.
type DelayedShipmentJob struct {
	handler queries.GetDelayedShipmentsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDelayedShipmentJob creates a new job for monitoring overdue shipments.
func NewDelayedShipmentJob(handler queries.GetDelayedShipmentsQueryHandler, logger *slog.Logger) *DelayedShipmentJob {
	return &DelayedShipmentJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "delayed_shipment_job"),
	}
}

// Start begins the delay monitor running every minute.
func (j *DelayedShipmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetDelayedShipmentsQuery()

		delayed, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Delayed shipment check failed", "error", err)
			return
		}

		for _, overdue := range delayed {
			j.logger.WarnContext(ctx, "Shipment past delivery estimate",
				"shipment_id", overdue.ID.String(),
				"order_id", overdue.OrderID.String(),
				"carrier_id", overdue.CarrierID,
				"tracking_number", overdue.TrackingNumber,
				"status", overdue.Status,
				"estimated_delivery", overdue.EstimatedDelivery,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delayed shipment job started (running every minute)")
	return nil
}

// Stop stops the delay monitor.
func (j *DelayedShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delayed shipment job stopped")
}
