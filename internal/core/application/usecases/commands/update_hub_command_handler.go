package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/hub"
)

// UpdateHubCommandHandler loads a hub, applies the changes and stores it.
// Renaming onto an existing name is reported as errs.DuplicateKeyError.
type UpdateHubCommandHandler struct {
	uowFactory HubUoWFactory
}

func NewUpdateHubCommandHandler(uowFactory HubUoWFactory) UpdateHubCommandHandler {
	return UpdateHubCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateHubCommandHandler) Handle(ctx context.Context, cmd UpdateHubCommand) (*hub.Hub, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := requireAdmin(cmd.Actor(), "update hub"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	hubs := uow.HubRepository()
	found, err := hubs.Get(ctx, cmd.HubID())
	if err != nil {
		return nil, err
	}

	if err = found.Apply(cmd.Changes()); err != nil {
		return nil, err
	}

	if err = hubs.Update(ctx, found); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return found, nil
}
