package feeconfigrepo

import (
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type FeeConfigDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelType string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	FeeType    string    `gorm:"type:varchar(16);not null"`
	BaseFee    float64   `gorm:"type:double precision;not null"`
	WeightRate *float64  `gorm:"type:double precision"`
}

func (FeeConfigDTO) TableName() string {
	return "fee_configs"
}

func fromDomain(c *fee.FeeConfig) FeeConfigDTO {
	return FeeConfigDTO{
		ID:         c.ID().Bytes(),
		ParcelType: c.ParcelType().String(),
		FeeType:    c.FeeType().String(),
		BaseFee:    c.BaseFee(),
		WeightRate: c.WeightRate(),
	}
}

func toDomain(dto FeeConfigDTO) (*fee.FeeConfig, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return fee.NewFeeConfig(id, fee.ParcelType(dto.ParcelType), fee.Type(dto.FeeType), dto.BaseFee, dto.WeightRate)
}
