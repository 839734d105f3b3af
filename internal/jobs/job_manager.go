package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	delayedShipmentJob *DelayedShipmentJob
	trackingSyncJob    *TrackingSyncJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query and command handlers as dependencies to wire up job execution.
func NewJobManager(
	delayedHandler queries.GetDelayedShipmentsQueryHandler,
	activeHandler queries.GetActiveShipmentsQueryHandler,
	trackHandler queries.TrackShipmentQueryHandler,
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		delayedShipmentJob: NewDelayedShipmentJob(delayedHandler, logger),
		trackingSyncJob:    NewTrackingSyncJob(activeHandler, trackHandler, updateStatusHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.delayedShipmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start delayed shipment job: %w", err)
	}

	if err := jm.trackingSyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.delayedShipmentJob.Stop()
		return fmt.Errorf("failed to start tracking sync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingSyncJob.Stop()
	jm.delayedShipmentJob.Stop()
}
