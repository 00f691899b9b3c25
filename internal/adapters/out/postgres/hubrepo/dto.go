package hubrepo

import (
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type HubDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name          string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Location      string         `gorm:"type:varchar(255);not null"`
	ContactNumber string         `gorm:"type:varchar(32);not null"`
	CoveredAreas  pq.StringArray `gorm:"type:text[];not null"`
}

func (HubDTO) TableName() string {
	return "hubs"
}

func fromDomain(h *hub.Hub) HubDTO {
	return HubDTO{
		ID:            h.ID().Bytes(),
		Name:          h.Name(),
		Location:      h.Location(),
		ContactNumber: h.ContactNumber(),
		CoveredAreas:  pq.StringArray(h.CoveredAreas()),
	}
}

func toDomain(dto HubDTO) (*hub.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return hub.RestoreHub(id, dto.Name, dto.Location, dto.ContactNumber, []string(dto.CoveredAreas))
}
