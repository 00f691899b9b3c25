package jobs

import (
	"context"
	"fmt"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRiderReconcileSchedule runs the reconciliation at the top of every minute.
const DefaultRiderReconcileSchedule = "0 * * * * *"

type RiderReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileRiderAvailabilityCommand) (int, error)
}

// RiderReconcileJob periodically returns riders stuck ON_DELIVERY to AVAILABLE.
type RiderReconcileJob struct {
	handler  RiderReconciler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewRiderReconcileJob uses a six-field cron schedule (seconds first). An
// empty schedule means DefaultRiderReconcileSchedule.
func NewRiderReconcileJob(handler RiderReconciler, schedule string, l *zap.Logger) *RiderReconcileJob {
	if schedule == "" {
		schedule = DefaultRiderReconcileSchedule
	}

	return &RiderReconcileJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Component(l, "rider_reconcile_job"),
	}
}

func (j *RiderReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("rider reconcile job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs a single reconciliation pass and returns how many riders were repaired.
func (j *RiderReconcileJob) Run(ctx context.Context) int {
	repaired, err := j.handler.Handle(ctx, commands.NewReconcileRiderAvailabilityCommand())
	if err != nil {
		j.logger.Error("rider reconcile job failed", zap.Error(err))
		return 0
	}
	if repaired > 0 {
		j.logger.Info("riders returned to available", zap.Int("repaired", repaired))
	}
	return repaired
}

// Stop waits for a running pass to finish.
func (j *RiderReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("rider reconcile job stopped")
}
