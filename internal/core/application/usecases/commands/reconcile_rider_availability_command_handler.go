package commands

import (
	"context"
)

// ReconcileRiderAvailabilityCommandHandler repairs rider availability in a
// single transaction.
type ReconcileRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewReconcileRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) ReconcileRiderAvailabilityCommandHandler {
	return ReconcileRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of riders made AVAILABLE again.
func (h *ReconcileRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd ReconcileRiderAvailabilityCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	riders, err := users.GetStuckOnDelivery(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, rider := range riders {
		changed, finishErr := rider.FinishDelivery(0)
		if finishErr != nil {
			return 0, finishErr
		}
		if !changed {
			continue
		}

		if err = users.Update(ctx, rider); err != nil {
			return 0, err
		}
		repaired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return repaired, nil
}
