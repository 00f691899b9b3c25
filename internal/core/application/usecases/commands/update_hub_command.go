package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrUpdateHubCommandIsNotConstructed = errors.New(
		"UpdateHubCommand must be created via NewUpdateHubCommand constructor",
	)
	ErrHubUpdateIsEmpty = errs.NewValueIsRequiredErrorWithCause("update", errors.New("nothing to update"))
)

// UpdateHubCommand applies a partial update to a hub.
type UpdateHubCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	hubID   kernel.UUID
	changes hub.Changes

	guard guard.ConstructorGuard
}

func NewUpdateHubCommand(actor kernel.Actor, hubID kernel.UUID, changes hub.Changes) (UpdateHubCommand, error) {
	if err := errors.Join(actor.Validate(), hubID.Validate()); err != nil {
		return UpdateHubCommand{}, err
	}
	if changes.IsEmpty() {
		return UpdateHubCommand{}, ErrHubUpdateIsEmpty
	}

	return UpdateHubCommand{
		actor:   actor,
		hubID:   hubID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateHubCommand) Validate() error {
	return c.guard.Validate(ErrUpdateHubCommandIsNotConstructed)
}

func (c UpdateHubCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateHubCommand) HubID() kernel.UUID {
	return c.hubID
}

func (c UpdateHubCommand) Changes() hub.Changes {
	return c.changes
}
