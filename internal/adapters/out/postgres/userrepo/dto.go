package userrepo

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name         string       `gorm:"type:varchar(255);not null"`
	Email        string       `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string       `gorm:"type:varchar(255);not null"`
	Phone        string       `gorm:"type:varchar(32)"`
	Role         string       `gorm:"type:varchar(16);not null;index"`
	Rider        RiderDTO     `gorm:"embedded;embeddedPrefix:rider_"`
	Addresses    []AddressDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string {
	return "users"
}

// RiderDTO holds the rider profile columns; all of them are NULL for non-riders.
type RiderDTO struct {
	VehicleType   *string    `gorm:"type:varchar(16)"`
	VehicleNumber *string    `gorm:"type:varchar(64)"`
	LicenseNumber *string    `gorm:"type:varchar(64)"`
	AssignedHubID *uuid.UUID `gorm:"type:uuid;index"`
	Availability  *int       `gorm:"type:smallint;index"`
}

type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"type:int;not null"`
	Label       string    `gorm:"type:varchar(16);not null"`
	AddressLine string    `gorm:"type:varchar(255);not null"`
	Area        string    `gorm:"type:varchar(255);not null"`
	City        string    `gorm:"type:varchar(255);not null"`
	State       string    `gorm:"type:varchar(255)"`
	PostalCode  string    `gorm:"type:varchar(32);not null"`
	Country     string    `gorm:"type:varchar(255);not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
}

func (AddressDTO) TableName() string {
	return "user_addresses"
}

func fromDomain(u *user.User) UserDTO {
	id := u.ID().Bytes()

	addresses := u.Addresses()
	addressDTOs := make([]AddressDTO, 0, len(addresses))
	for i, a := range addresses {
		params := a.Params()
		addressDTOs = append(addressDTOs, AddressDTO{
			ID:          a.ID().Bytes(),
			UserID:      id,
			Position:    i,
			Label:       string(params.Label),
			AddressLine: params.AddressLine,
			Area:        params.Area,
			City:        params.City,
			State:       params.State,
			PostalCode:  params.PostalCode,
			Country:     params.Country,
			IsDefault:   params.IsDefault,
		})
	}

	return UserDTO{
		ID:           id,
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Phone:        u.Phone(),
		Role:         u.Role().String(),
		Rider:        riderFromDomain(u.RiderProfile()),
		Addresses:    addressDTOs,
	}
}

func riderFromDomain(profile *user.RiderProfile) RiderDTO {
	if profile == nil {
		return RiderDTO{}
	}

	vehicleType := string(profile.VehicleType())
	vehicleNumber := profile.VehicleNumber()
	licenseNumber := profile.LicenseNumber()
	hubID := profile.AssignedHub().Bytes()
	availability := int(profile.Availability())

	return RiderDTO{
		VehicleType:   &vehicleType,
		VehicleNumber: &vehicleNumber,
		LicenseNumber: &licenseNumber,
		AssignedHubID: &hubID,
		Availability:  &availability,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addresses := make([]kernel.Address, 0, len(dto.Addresses))
	for _, addressDTO := range dto.Addresses {
		a, addressErr := addressToDomain(addressDTO)
		if addressErr != nil {
			return nil, addressErr
		}
		addresses = append(addresses, a)
	}

	rider, err := riderToDomain(dto.Rider)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, dto.Email, dto.PasswordHash, dto.Phone, kernel.Role(dto.Role), addresses, rider)
}

func riderToDomain(dto RiderDTO) (*user.RiderProfile, error) {
	if dto.AssignedHubID == nil {
		return nil, nil
	}

	hubID, err := kernel.UUIDFromBytes(dto.AssignedHubID[:])
	if err != nil {
		return nil, err
	}

	profile, err := user.NewRiderProfile(
		user.VehicleType(deref(dto.VehicleType)),
		deref(dto.VehicleNumber),
		deref(dto.LicenseNumber),
		hubID,
		user.Availability(derefInt(dto.Availability)),
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
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
		IsDefault:   dto.IsDefault,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
