package queries

import (
	"context"
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery pages through all accounts, optionally narrowed by a search
// term on name, email or phone and by role. Password hashes are never read.
type ListUsersQuery struct {
	search string
	role   *kernel.Role
	page   Page

	guard guard.ConstructorGuard
}

// NewListUsersQuery parses role when it is not empty.
func NewListUsersQuery(search, role string, page, limit int) (ListUsersQuery, error) {
	p, err := newPage(page, limit)
	if err != nil {
		return ListUsersQuery{}, err
	}

	q := ListUsersQuery{
		search: strings.TrimSpace(search),
		page:   p,
		guard:  guard.NewConstructorGuard(),
	}
	if role != "" {
		r, roleErr := kernel.ParseRole(role)
		if roleErr != nil {
			return ListUsersQuery{}, roleErr
		}
		q.role = &r
	}

	return q, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

type UserRiderView struct {
	VehicleType   string
	VehicleNumber string
	LicenseNumber string
	AssignedHub   kernel.UUID
	Availability  string
}

type UserView struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
	Role  string
	Rider *UserRiderView
}

type ListUsersQueryResponse struct {
	Data []UserView
	Meta Meta
}

type userRow struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Phone              string
	Role               string
	RiderVehicleType   *string
	RiderVehicleNumber *string
	RiderLicenseNumber *string
	RiderAssignedHubID *uuid.UUID
	RiderAvailability  *int
}

func (r userRow) toView() (UserView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return UserView{}, err
	}
	view := UserView{
		ID:    id,
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Role:  r.Role,
	}
	if r.RiderAssignedHubID == nil {
		return view, nil
	}

	hubID, err := kernel.UUIDFromBytes(r.RiderAssignedHubID[:])
	if err != nil {
		return UserView{}, err
	}
	rider := &UserRiderView{AssignedHub: hubID}
	if r.RiderVehicleType != nil {
		rider.VehicleType = *r.RiderVehicleType
	}
	if r.RiderVehicleNumber != nil {
		rider.VehicleNumber = *r.RiderVehicleNumber
	}
	if r.RiderLicenseNumber != nil {
		rider.LicenseNumber = *r.RiderLicenseNumber
	}
	if r.RiderAvailability != nil {
		rider.Availability = user.Availability(*r.RiderAvailability).String()
	}
	view.Rider = rider
	return view, nil
}

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) (ListUsersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListUsersQueryResponse{}, err
	}

	base := h.db.WithContext(ctx).Table("users")
	if query.search != "" {
		pattern := likePattern(query.search)
		base = base.Where("(name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)", pattern, pattern, pattern)
	}
	if query.role != nil {
		base = base.Where("role = ?", query.role.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListUsersQueryResponse{}, err
	}

	rows := make([]userRow, 0)
	err := base.
		Select("id", "name", "email", "phone", "role",
			"rider_vehicle_type", "rider_vehicle_number", "rider_license_number",
			"rider_assigned_hub_id", "rider_availability").
		Order("name").
		Limit(query.page.Limit).
		Offset(query.page.offset()).
		Scan(&rows).Error
	if err != nil {
		return ListUsersQueryResponse{}, err
	}

	users := make([]UserView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.toView()
		if viewErr != nil {
			return ListUsersQueryResponse{}, viewErr
		}
		users = append(users, view)
	}

	return ListUsersQueryResponse{Data: users, Meta: newMeta(query.page, total)}, nil
}
