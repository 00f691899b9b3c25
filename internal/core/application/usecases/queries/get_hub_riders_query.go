package queries

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetHubRidersQueryIsNotConstructed = errors.New(
	"GetHubRidersQuery must be created via NewGetHubRidersQuery constructor",
)

// GetHubRidersQuery lists the riders pinned to one hub.
type GetHubRidersQuery struct {
	hubID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetHubRidersQuery(hubID kernel.UUID) (GetHubRidersQuery, error) {
	if err := hubID.Validate(); err != nil {
		return GetHubRidersQuery{}, err
	}

	return GetHubRidersQuery{hubID: hubID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHubRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetHubRidersQueryIsNotConstructed)
}

func (q GetHubRidersQuery) HubID() kernel.UUID {
	return q.hubID
}

type RiderView struct {
	ID            kernel.UUID
	Name          string
	Email         string
	Phone         string
	VehicleType   string
	VehicleNumber string
	LicenseNumber string
	Availability  string
}

type riderRow struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Phone              string
	RiderVehicleType   string
	RiderVehicleNumber string
	RiderLicenseNumber string
	RiderAvailability  int
}

// GetHubRidersQueryHandler reports errs.ObjectNotFoundError both for an
// unknown hub and for a hub without riders.
type GetHubRidersQueryHandler struct {
	db *gorm.DB
}

func NewGetHubRidersQueryHandler(db *gorm.DB) GetHubRidersQueryHandler {
	return GetHubRidersQueryHandler{db: db}
}

func (h GetHubRidersQueryHandler) Handle(ctx context.Context, query GetHubRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	hubID := query.HubID()

	var hubs int64
	if err := h.db.WithContext(ctx).Table("hubs").Where("id = ?", hubID.Bytes()).Count(&hubs).Error; err != nil {
		return nil, err
	}
	if hubs == 0 {
		return nil, errs.NewObjectNotFoundError("hub", hubID)
	}

	rows := make([]riderRow, 0)
	err := h.db.WithContext(ctx).
		Table("users").
		Select("id", "name", "email", "phone",
			"rider_vehicle_type", "rider_vehicle_number", "rider_license_number", "rider_availability").
		Where("role = ? AND rider_assigned_hub_id = ?", kernel.RoleRider.String(), hubID.Bytes()).
		Order("name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause("rider", hubID, errors.New("no riders found for this hub"))
	}

	riders := make([]RiderView, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		riders = append(riders, RiderView{
			ID:            id,
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			VehicleType:   row.RiderVehicleType,
			VehicleNumber: row.RiderVehicleNumber,
			LicenseNumber: row.RiderLicenseNumber,
			Availability:  user.Availability(row.RiderAvailability).String(),
		})
	}

	return riders, nil
}
