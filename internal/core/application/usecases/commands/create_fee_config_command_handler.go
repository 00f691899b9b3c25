package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/ports"

	"go.uber.org/zap"
)

// CreateFeeConfigCommandHandler stores a fee config and warms the cache with it
// once the transaction has committed.
type CreateFeeConfigCommandHandler struct {
	uowFactory FeeConfigUoWFactory
	cache      ports.FeeConfigCache
	logger     *zap.Logger
}

// NewCreateFeeConfigCommandHandler creates the handler. cache may be nil.
func NewCreateFeeConfigCommandHandler(
	uowFactory FeeConfigUoWFactory,
	cache ports.FeeConfigCache,
	logger *zap.Logger,
) CreateFeeConfigCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateFeeConfigCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

func (h *CreateFeeConfigCommandHandler) Handle(ctx context.Context, cmd CreateFeeConfigCommand) (*fee.FeeConfig, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := requireAdmin(cmd.Actor(), "create fee config"); err != nil {
		return nil, err
	}

	config, err := fee.NewFeeConfig(kernel.NewUUID(), cmd.ParcelType(), cmd.FeeType(), cmd.BaseFee(), cmd.WeightRate())
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

	if err = uow.FeeConfigRepository().Add(ctx, config); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err = h.cache.Set(ctx, config); err != nil {
			h.logger.Warn("fee config cache write failed", zap.Error(err), zap.String("parcel_type", string(config.ParcelType())))
		}
	}

	return config, nil
}
