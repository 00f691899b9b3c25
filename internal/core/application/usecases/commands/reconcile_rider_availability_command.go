package commands

import (
	"errors"

	"parcelhub/internal/pkg/guard"
)

// ReconcileRiderAvailabilityCommand returns riders stuck ON_DELIVERY to
// AVAILABLE when none of their parcels is OUT_FOR_DELIVERY any more.
//
// Example:
//
//	cmd := NewReconcileRiderAvailabilityCommand()
//	handler := NewReconcileRiderAvailabilityCommandHandler(uowFactory)
//
//	repaired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("rider reconciliation failed: %w", err)
//	}
type ReconcileRiderAvailabilityCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrReconcileRiderAvailabilityCommandIsNotConstructed = errors.New(
		"ReconcileRiderAvailabilityCommand must be created via NewReconcileRiderAvailabilityCommand constructor",
	)
)

func NewReconcileRiderAvailabilityCommand() ReconcileRiderAvailabilityCommand {
	return ReconcileRiderAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *ReconcileRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRiderAvailabilityCommandIsNotConstructed)
}
