package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

type ParcelDTO struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TrackingID      string           `gorm:"type:varchar(32);not null;uniqueIndex"`
	SenderID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Priority        string           `gorm:"type:varchar(16);not null"`
	PickupHubID     *uuid.UUID       `gorm:"type:uuid"`
	DeliveryHubID   *uuid.UUID       `gorm:"type:uuid"`
	PickupRiderID   *uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryRiderID *uuid.UUID       `gorm:"type:uuid;index"`
	CurrentHubID    *uuid.UUID       `gorm:"type:uuid"`
	PickupAddress   AddressDTO       `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryAddress AddressDTO       `gorm:"embedded;embeddedPrefix:delivery_"`
	FeeConfigID     uuid.UUID        `gorm:"type:uuid;not null"`
	Weight          *float64         `gorm:"type:double precision"`
	Distance        *float64         `gorm:"type:double precision"`
	DeliveryFee     float64          `gorm:"type:double precision;not null"`
	Status          int              `gorm:"type:smallint;not null;index"`
	Remarks         string           `gorm:"type:text"`
	CreatedAt       time.Time        `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time        `gorm:"not null;autoUpdateTime:false"`
	TrackingLogs    []TrackingLogDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:RESTRICT"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

// AddressDTO is the snapshot of an address embedded in the parcel row.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid"`
	Label       string    `gorm:"type:varchar(16)"`
	AddressLine string    `gorm:"type:varchar(255);not null"`
	Area        string    `gorm:"type:varchar(255);not null"`
	City        string    `gorm:"type:varchar(255);not null"`
	State       string    `gorm:"type:varchar(255)"`
	PostalCode  string    `gorm:"type:varchar(32);not null"`
	Country     string    `gorm:"type:varchar(255);not null"`
}

// TrackingLogDTO is one row of the append-only parcel history.
// Position keeps the order stable when two entries share a timestamp.
type TrackingLogDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_log_position"`
	Position    int       `gorm:"type:int;not null;uniqueIndex:idx_tracking_log_position"`
	Status      int       `gorm:"type:smallint;not null"`
	UpdatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:text;not null"`
	At          time.Time `gorm:"not null"`
}

func (TrackingLogDTO) TableName() string {
	return "parcel_tracking_logs"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	id := p.ID().Bytes()

	logs := p.TrackingLogs()
	logDTOs := make([]TrackingLogDTO, 0, len(logs))
	for i, l := range logs {
		logDTOs = append(logDTOs, trackingLogFromDomain(id, i, l))
	}

	return ParcelDTO{
		ID:              id,
		TrackingID:      p.TrackingID().String(),
		SenderID:        p.SenderID().Bytes(),
		ReceiverID:      p.ReceiverID().Bytes(),
		Priority:        p.Priority().String(),
		PickupHubID:     kernel.OptionalBytes(p.PickupHubID()),
		DeliveryHubID:   kernel.OptionalBytes(p.DeliveryHubID()),
		PickupRiderID:   kernel.OptionalBytes(p.PickupRiderID()),
		DeliveryRiderID: kernel.OptionalBytes(p.DeliveryRiderID()),
		CurrentHubID:    kernel.OptionalBytes(p.CurrentHubID()),
		PickupAddress:   addressFromDomain(p.PickupAddress()),
		DeliveryAddress: addressFromDomain(p.DeliveryAddress()),
		FeeConfigID:     p.FeeConfigID().Bytes(),
		Weight:          p.Weight(),
		Distance:        p.Distance(),
		DeliveryFee:     p.DeliveryFee(),
		Status:          int(p.Status()),
		Remarks:         p.Remarks(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
		TrackingLogs:    logDTOs,
	}
}

func addressFromDomain(a kernel.Address) AddressDTO {
	params := a.Params()
	return AddressDTO{
		ID:          a.ID().Bytes(),
		Label:       string(params.Label),
		AddressLine: params.AddressLine,
		Area:        params.Area,
		City:        params.City,
		State:       params.State,
		PostalCode:  params.PostalCode,
		Country:     params.Country,
	}
}

func trackingLogFromDomain(parcelID uuid.UUID, position int, l parcel.TrackingLog) TrackingLogDTO {
	return TrackingLogDTO{
		ID:          l.ID().Bytes(),
		ParcelID:    parcelID,
		Position:    position,
		Status:      int(l.Status()),
		UpdatedBy:   l.UpdatedBy().Bytes(),
		Description: l.Description(),
		At:          l.At(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := parcel.ParseTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	receiverID, err := kernel.UUIDFromBytes(dto.ReceiverID[:])
	if err != nil {
		return nil, err
	}
	feeConfigID, err := kernel.UUIDFromBytes(dto.FeeConfigID[:])
	if err != nil {
		return nil, err
	}
	pickupAddress, err := addressToDomain(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := addressToDomain(dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	refs := make([]*kernel.UUID, 5)
	for i, raw := range []*uuid.UUID{dto.PickupHubID, dto.DeliveryHubID, dto.PickupRiderID, dto.DeliveryRiderID, dto.CurrentHubID} {
		if refs[i], err = kernel.OptionalUUIDFromBytes(raw); err != nil {
			return nil, err
		}
	}

	logs := make([]parcel.TrackingLog, 0, len(dto.TrackingLogs))
	for _, logDTO := range dto.TrackingLogs {
		l, logErr := trackingLogToDomain(logDTO)
		if logErr != nil {
			return nil, logErr
		}
		logs = append(logs, l)
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		Draft: parcel.Draft{
			ID:              id,
			TrackingID:      trackingID,
			SenderID:        senderID,
			ReceiverID:      receiverID,
			Priority:        parcel.Priority(dto.Priority),
			PickupAddress:   pickupAddress,
			DeliveryAddress: deliveryAddress,
			FeeConfigID:     feeConfigID,
			Weight:          dto.Weight,
			Distance:        dto.Distance,
			DeliveryFee:     dto.DeliveryFee,
			CreatedAt:       dto.CreatedAt,
		},
		Status:          parcel.Status(dto.Status),
		PickupHubID:     refs[0],
		DeliveryHubID:   refs[1],
		PickupRiderID:   refs[2],
		DeliveryRiderID: refs[3],
		CurrentHubID:    refs[4],
		Remarks:         dto.Remarks,
		TrackingLogs:    logs,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(id, kernel.AddressParams{
		Label:       kernel.AddressLabel(dto.Label),
		AddressLine: dto.AddressLine,
		Area:        dto.Area,
		City:        dto.City,
		State:       dto.State,
		PostalCode:  dto.PostalCode,
		Country:     dto.Country,
	})
}

func trackingLogToDomain(dto TrackingLogDTO) (parcel.TrackingLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.TrackingLog{}, err
	}
	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return parcel.TrackingLog{}, err
	}
	return parcel.NewTrackingLog(id, parcel.Status(dto.Status), updatedBy, dto.Description, dto.At)
}
