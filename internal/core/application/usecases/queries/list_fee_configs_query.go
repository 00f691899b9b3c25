package queries

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListFeeConfigsQueryIsNotConstructed = errors.New(
	"ListFeeConfigsQuery must be created via NewListFeeConfigsQuery constructor",
)

type ListFeeConfigsQuery struct {
	guard guard.ConstructorGuard
}

func NewListFeeConfigsQuery() ListFeeConfigsQuery {
	return ListFeeConfigsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListFeeConfigsQuery) Validate() error {
	return q.guard.Validate(ErrListFeeConfigsQueryIsNotConstructed)
}

type FeeConfigView struct {
	ID         kernel.UUID
	ParcelType string
	FeeType    string
	BaseFee    float64
	WeightRate *float64
}

type feeConfigRow struct {
	ID         uuid.UUID
	ParcelType string
	FeeType    string
	BaseFee    float64
	WeightRate *float64
}

// ListFeeConfigsQueryHandler returns every fee config ordered by parcel type.
type ListFeeConfigsQueryHandler struct {
	db *gorm.DB
}

func NewListFeeConfigsQueryHandler(db *gorm.DB) ListFeeConfigsQueryHandler {
	return ListFeeConfigsQueryHandler{db: db}
}

func (h ListFeeConfigsQueryHandler) Handle(ctx context.Context, query ListFeeConfigsQuery) ([]FeeConfigView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows := make([]feeConfigRow, 0)
	err := h.db.WithContext(ctx).
		Table("fee_configs").
		Select("id", "parcel_type", "fee_type", "base_fee", "weight_rate").
		Order("parcel_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	configs := make([]FeeConfigView, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		configs = append(configs, FeeConfigView{
			ID:         id,
			ParcelType: row.ParcelType,
			FeeType:    row.FeeType,
			BaseFee:    row.BaseFee,
			WeightRate: row.WeightRate,
		})
	}

	return configs, nil
}
