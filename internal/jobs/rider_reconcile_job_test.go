package jobs

import (
	"context"
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockRiderReconciler struct {
	mock.Mock
}

func (m *MockRiderReconciler) Handle(ctx context.Context, cmd commands.ReconcileRiderAvailabilityCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestRiderReconcileJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := new(MockRiderReconciler)
	reconciler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReconcileRiderAvailabilityCommand) bool {
		return cmd.Validate() == nil
	})).Return(3, nil).Once()

	job := NewRiderReconcileJob(reconciler, "", zap.New(core))

	assert.Equal(t, 3, job.Run(t.Context()))
	reconciler.AssertExpectations(t)

	entries := logs.FilterMessage("riders returned to available").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["repaired"])
	assert.Equal(t, "rider_reconcile_job", entries[0].ContextMap()["component"])
}

func TestRiderReconcileJob_RunNothingToRepair(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := new(MockRiderReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

	job := NewRiderReconcileJob(reconciler, "", zap.New(core))

	assert.Zero(t, job.Run(t.Context()))
	assert.Zero(t, logs.Len())
}

func TestRiderReconcileJob_RunLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := new(MockRiderReconciler)
	reconciler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("connection reset")).Once()

	job := NewRiderReconcileJob(reconciler, "", zap.New(core))

	assert.Zero(t, job.Run(t.Context()))
	entries := logs.FilterMessage("rider reconcile job failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestRiderReconcileJob_DefaultSchedule(t *testing.T) {
	job := NewRiderReconcileJob(new(MockRiderReconciler), "", zap.NewNop())
	assert.Equal(t, DefaultRiderReconcileSchedule, job.schedule)
}

func TestJobManager_StartAllRejectsBadSchedule(t *testing.T) {
	jm := NewJobManager(Config{RiderReconcileSchedule: "every minute"}, new(MockRiderReconciler), zap.NewNop())
	require.Error(t, jm.StartAll())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(Config{RiderReconcileSchedule: "0 0 3 * * *"}, new(MockRiderReconciler), zap.NewNop())
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
