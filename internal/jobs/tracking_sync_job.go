package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/robfig/cron/v3"
)

// statusFromTrackingEvent maps a carrier feed status onto the shipment
// lifecycle. Statuses outside the map, such as customs holds, leave the
// shipment where it is.
func statusFromTrackingEvent(feedStatus string) (shipment.Status, bool) {
	switch feedStatus {
	case "picked_up", "in_transit", "out_for_delivery", "shipped":
		return shipment.StatusShipped, true
	case "delivered":
		return shipment.StatusDelivered, true
	default:
		return shipment.StatusUnknown, false
	}
}

// trackingSyncActor marks status changes made by the sync job in the log.
const trackingSyncActor = "tracking-sync"

// TrackingSyncJob polls carrier tracking feeds for in-flight shipments and
// advances their statuses. Runs every five minutes; a carrier outage only
// delays the affected shipments until the next tick.
type TrackingSyncJob struct {
	activeHandler       queries.GetActiveShipmentsQueryHandler
	trackHandler        queries.TrackShipmentQueryHandler
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler
	cron                *cron.Cron
	logger              *slog.Logger
}

// NewTrackingSyncJob creates a new job for syncing carrier tracking data.
func NewTrackingSyncJob(
	activeHandler queries.GetActiveShipmentsQueryHandler,
	trackHandler queries.TrackShipmentQueryHandler,
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler,
	logger *slog.Logger,
) *TrackingSyncJob {
	return &TrackingSyncJob{
		activeHandler:       activeHandler,
		trackHandler:        trackHandler,
		updateStatusHandler: updateStatusHandler,
		cron:                cron.New(),
		logger:              logger.With("component", "tracking_sync_job"),
	}
}

// Start begins the tracking sync running every five minutes.
func (j *TrackingSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		j.syncAll(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking sync job started (running every five minutes)")
	return nil
}

// Stop stops the tracking sync.
func (j *TrackingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking sync job stopped")
}

func (j *TrackingSyncJob) syncAll(ctx context.Context) {
	active, err := j.activeHandler.Handle(ctx, queries.NewGetActiveShipmentsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list active shipments", "error", err)
		return
	}

	for _, candidate := range active {
		j.syncOne(ctx, candidate)
	}
}

func (j *TrackingSyncJob) syncOne(ctx context.Context, candidate queries.GetActiveShipmentsQueryResponse) {
	trackQuery, err := queries.NewTrackShipmentQuery(candidate.ID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build tracking query",
			"shipment_id", candidate.ID.String(), "error", err)
		return
	}

	events, err := j.trackHandler.Handle(ctx, trackQuery)
	if err != nil {
		j.logger.WarnContext(ctx, "Carrier tracking unavailable",
			"shipment_id", candidate.ID.String(),
			"carrier_id", candidate.CarrierID,
			"error", err,
		)
		return
	}
	if len(events) == 0 {
		return
	}

	latest := events[len(events)-1]
	target, ok := statusFromTrackingEvent(latest.Status)
	if !ok {
		return
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(
		candidate.ID, target, latest.Description, trackingSyncActor,
	)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build status command",
			"shipment_id", candidate.ID.String(), "error", err)
		return
	}

	// A repeated carrier status is a no-op in the handler, so syncing the
	// same feed twice does not duplicate log entries.
	if err := j.updateStatusHandler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Failed to advance shipment status",
			"shipment_id", candidate.ID.String(),
			"target", target.String(),
			"error", err,
		)
	}
}
