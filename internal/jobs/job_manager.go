package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds the job schedules.
type Config struct {
	RiderReconcileSchedule string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	riderReconcileJob *RiderReconcileJob
}

func NewJobManager(cfg Config, reconciler RiderReconciler, logger *zap.Logger) *JobManager {
	return &JobManager{
		riderReconcileJob: NewRiderReconcileJob(reconciler, cfg.RiderReconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.riderReconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider reconcile job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.riderReconcileJob.Stop()
}
