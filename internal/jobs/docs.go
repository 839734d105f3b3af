// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. DelayedShipmentJob - Runs every minute to flag shipments past their delivery estimate
// 2. TrackingSyncJob - Runs every five minutes to poll carrier tracking feeds and advance shipment statuses
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(delayedHandler, activeHandler, trackHandler, updateStatusHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The delay monitor logs every overdue shipment as a warning
// - The tracking sync skips carriers that are temporarily unreachable and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
