package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
)

// CreateHubCommandHandler stores a new hub. Names are unique; a clash surfaces
// as errs.DuplicateKeyError from the repository.
type CreateHubCommandHandler struct {
	uowFactory HubUoWFactory
}

func NewCreateHubCommandHandler(uowFactory HubUoWFactory) CreateHubCommandHandler {
	return CreateHubCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateHubCommandHandler) Handle(ctx context.Context, cmd CreateHubCommand) (*hub.Hub, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := requireAdmin(cmd.Actor(), "create hub"); err != nil {
		return nil, err
	}

	newHub, err := hub.NewHub(kernel.NewUUID(), cmd.Name(), cmd.Location(), cmd.ContactNumber(), cmd.CoveredAreas())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.HubRepository().Add(ctx, newHub); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newHub, nil
}
