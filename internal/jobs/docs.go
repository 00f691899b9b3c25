// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution
// schedules and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(cfg.Jobs, reconcileHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// RiderReconcileJob finds riders left ON_DELIVERY although none of their
// parcels is OUT_FOR_DELIVERY and marks them AVAILABLE again. Parcel updates
// already release riders when a delivery ends; the job repairs riders left
// behind by a failed or partial write.
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. An invalid schedule
// fails StartAll.
package jobs
