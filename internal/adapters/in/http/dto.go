package http

import (
	"errors"
	"time"

	"parcelhub/internal/adapters/in/http/auth"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/fee"
	"parcelhub/internal/core/domain/model/hub"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"
)

const timeLayout = time.RFC3339Nano

// Envelope wraps every successful response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Meta    *MetaDTO `json:"meta,omitempty"`
}

type MetaDTO struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

func toMeta(m queries.Meta) *MetaDTO {
	return &MetaDTO{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPage: m.TotalPage}
}

// Requests

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ResetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AddressDTO struct {
	ID          string `json:"id,omitempty"`
	Label       string `json:"label,omitempty"`
	AddressLine string `json:"addressLine"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"isDefault"`
}

func (a AddressDTO) params() kernel.AddressParams {
	return kernel.AddressParams{
		Label:       kernel.AddressLabel(a.Label),
		AddressLine: a.AddressLine,
		Area:        a.Area,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
		IsDefault:   a.IsDefault,
	}
}

type RiderProfileRequest struct {
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
	LicenseNumber string `json:"licenseNumber"`
	AssignedHub   string `json:"assignedHub"`
}

// input is nil when no profile was sent.
func (r *RiderProfileRequest) input() (*commands.RiderInput, error) {
	if r == nil {
		return nil, nil
	}
	hubID, err := kernel.UUIDFromString(r.AssignedHub)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedHub", err)
	}
	return &commands.RiderInput{
		VehicleType:   user.VehicleType(r.VehicleType),
		VehicleNumber: r.VehicleNumber,
		LicenseNumber: r.LicenseNumber,
		AssignedHub:   hubID,
	}, nil
}

type RegisterRequest struct {
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	Password     string               `json:"password"`
	Phone        string               `json:"phone"`
	Role         string               `json:"role"`
	RiderProfile *RiderProfileRequest `json:"riderProfile"`
}

func (r RegisterRequest) registration() (commands.Registration, error) {
	role := kernel.RoleUser
	if r.Role != "" {
		parsed, err := kernel.ParseRole(r.Role)
		if err != nil {
			return commands.Registration{}, err
		}
		role = parsed
	}

	reg := commands.Registration{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		Role:     role,
	}

	rider, err := r.RiderProfile.input()
	if err != nil {
		return commands.Registration{}, err
	}
	reg.Rider = rider

	return reg, nil
}

type UpdateUserRequest struct {
	Name         *string              `json:"name"`
	Phone        *string              `json:"phone"`
	Password     *string              `json:"password"`
	Role         *string              `json:"role"`
	RiderProfile *RiderProfileRequest `json:"riderProfile"`
}

func (r UpdateUserRequest) changes() (commands.UserChanges, error) {
	rider, err := r.RiderProfile.input()
	if err != nil {
		return commands.UserChanges{}, err
	}

	return commands.UserChanges{
		Name:     r.Name,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     r.Role,
		Rider:    rider,
	}, nil
}

// AddAddressesRequest carries either one address or a list.
type AddAddressesRequest struct {
	Address   *AddressDTO  `json:"address"`
	Addresses []AddressDTO `json:"addresses"`
}

func (r AddAddressesRequest) batch() (commands.AddressBatch, error) {
	switch {
	case r.Address != nil && r.Addresses != nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("address", errors.New("send either address or addresses"))
	case r.Address != nil:
		return commands.SingleAddress{Address: r.Address.params()}, nil
	case r.Addresses != nil:
		list := make([]kernel.AddressParams, 0, len(r.Addresses))
		for _, a := range r.Addresses {
			list = append(list, a.params())
		}
		return commands.AddressList{Addresses: list}, nil
	default:
		return nil, commands.ErrAddressDataIsRequired
	}
}

type CreateParcelRequest struct {
	Receiver          string      `json:"receiver"`
	Priority          string      `json:"priority"`
	PickUpAddressID   *string     `json:"pickUpAddressId"`
	DeliveryAddressID *string     `json:"deliveryAddressId"`
	PickupAddress     *AddressDTO `json:"pickupAddress"`
	DeliveryAddress   *AddressDTO `json:"deliveryAddress"`
	ParcelType        string      `json:"parcelType"`
	Weight            *float64    `json:"weight"`
	Distance          *float64    `json:"distance"`
}

func (r CreateParcelRequest) parcelRequest() (commands.ParcelRequest, error) {
	receiver, err := kernel.UUIDFromString(r.Receiver)
	if err != nil {
		return commands.ParcelRequest{}, errs.NewValueIsInvalidErrorWithCause("receiver", err)
	}
	pickup, err := addressInput("pickupAddress", r.PickUpAddressID, r.PickupAddress)
	if err != nil {
		return commands.ParcelRequest{}, err
	}
	delivery, err := addressInput("deliveryAddress", r.DeliveryAddressID, r.DeliveryAddress)
	if err != nil {
		return commands.ParcelRequest{}, err
	}

	return commands.ParcelRequest{
		ReceiverID:      receiver,
		Priority:        r.Priority,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		ParcelType:      fee.ParcelType(r.ParcelType),
		Weight:          r.Weight,
		Distance:        r.Distance,
	}, nil
}

// addressInput resolves the id-or-inline pair. An id wins when both are sent;
// nil means neither was.
func addressInput(field string, id *string, inline *AddressDTO) (commands.AddressInput, error) {
	if id != nil {
		ref, err := optionalUUID(field, id)
		if err != nil {
			return nil, err
		}
		return commands.AddressRef{ID: *ref}, nil
	}
	if inline != nil {
		return commands.InlineAddress{Params: inline.params()}, nil
	}
	return nil, nil
}

type UpdateParcelRequest struct {
	Status        *string `json:"status"`
	Remarks       *string `json:"remarks"`
	PickupHub     *string `json:"pickupHub"`
	DeliveryHub   *string `json:"deliveryHub"`
	PickupRider   *string `json:"pickupRider"`
	DeliveryRider *string `json:"deliveryRider"`
}

func (r UpdateParcelRequest) changes() (commands.ParcelChanges, error) {
	pickupHub, pickupHubErr := optionalUUID("pickupHub", r.PickupHub)
	deliveryHub, deliveryHubErr := optionalUUID("deliveryHub", r.DeliveryHub)
	pickupRider, pickupRiderErr := optionalUUID("pickupRider", r.PickupRider)
	deliveryRider, deliveryRiderErr := optionalUUID("deliveryRider", r.DeliveryRider)
	if err := errors.Join(pickupHubErr, deliveryHubErr, pickupRiderErr, deliveryRiderErr); err != nil {
		return commands.ParcelChanges{}, err
	}

	return commands.ParcelChanges{
		Status:        r.Status,
		Remarks:       r.Remarks,
		PickupHub:     pickupHub,
		DeliveryHub:   deliveryHub,
		PickupRider:   pickupRider,
		DeliveryRider: deliveryRider,
	}, nil
}

type CreateHubRequest struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	ContactNumber string   `json:"contactNumber"`
	CoveredArea   []string `json:"coveredArea"`
}

type UpdateHubRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	ContactNumber *string  `json:"contactNumber"`
	CoveredArea   []string `json:"coveredArea"`
}

func (r UpdateHubRequest) changes() hub.Changes {
	return hub.Changes{
		Name:          r.Name,
		Location:      r.Location,
		ContactNumber: r.ContactNumber,
		CoveredAreas:  r.CoveredArea,
	}
}

type CreateFeeConfigRequest struct {
	ParcelType string   `json:"parcelType"`
	FeeType    string   `json:"feeType"`
	BaseFee    float64  `json:"baseFee"`
	WeightRate *float64 `json:"weightRate"`
}

// Responses

type TrackingLogDTO struct {
	Status      string `json:"status"`
	UpdatedBy   string `json:"updatedBy"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type ParcelDTO struct {
	ID              string           `json:"id"`
	TrackingID      string           `json:"trackingId"`
	Sender          string           `json:"sender"`
	Receiver        string           `json:"receiver"`
	Status          string           `json:"status"`
	Priority        string           `json:"priority"`
	PickupHub       *string          `json:"pickupHub,omitempty"`
	DeliveryHub     *string          `json:"deliveryHub,omitempty"`
	CurrentHub      *string          `json:"currentHub,omitempty"`
	PickupRider     *string          `json:"pickupRider,omitempty"`
	DeliveryRider   *string          `json:"deliveryRider,omitempty"`
	PickupAddress   AddressDTO       `json:"pickupAddress"`
	DeliveryAddress AddressDTO       `json:"deliveryAddress"`
	FeeConfig       string           `json:"feeConfig"`
	Weight          *float64         `json:"weight,omitempty"`
	Distance        *float64         `json:"distance,omitempty"`
	DeliveryFee     float64          `json:"deliveryFee"`
	Remarks         string           `json:"remarks,omitempty"`
	TrackingLogs    []TrackingLogDTO `json:"trackingLogs"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

func toParcelDTO(p *parcel.Parcel) ParcelDTO {
	logs := make([]TrackingLogDTO, 0, len(p.TrackingLogs()))
	for _, l := range p.TrackingLogs() {
		logs = append(logs, TrackingLogDTO{
			Status:      l.Status().String(),
			UpdatedBy:   l.UpdatedBy().String(),
			Description: l.Description(),
			Timestamp:   l.At().UTC().Format(timeLayout),
		})
	}

	return ParcelDTO{
		ID:              p.ID().String(),
		TrackingID:      p.TrackingID().String(),
		Sender:          p.SenderID().String(),
		Receiver:        p.ReceiverID().String(),
		Status:          p.Status().String(),
		Priority:        p.Priority().String(),
		PickupHub:       idString(p.PickupHubID()),
		DeliveryHub:     idString(p.DeliveryHubID()),
		CurrentHub:      idString(p.CurrentHubID()),
		PickupRider:     idString(p.PickupRiderID()),
		DeliveryRider:   idString(p.DeliveryRiderID()),
		PickupAddress:   toAddressDTO(p.PickupAddress()),
		DeliveryAddress: toAddressDTO(p.DeliveryAddress()),
		FeeConfig:       p.FeeConfigID().String(),
		Weight:          p.Weight(),
		Distance:        p.Distance(),
		DeliveryFee:     p.DeliveryFee(),
		Remarks:         p.Remarks(),
		TrackingLogs:    logs,
		CreatedAt:       p.CreatedAt().UTC().Format(timeLayout),
		UpdatedAt:       p.UpdatedAt().UTC().Format(timeLayout),
	}
}

func toAddressDTO(a kernel.Address) AddressDTO {
	params := a.Params()
	return AddressDTO{
		ID:          a.ID().String(),
		Label:       string(params.Label),
		AddressLine: params.AddressLine,
		Area:        params.Area,
		City:        params.City,
		State:       params.State,
		PostalCode:  params.PostalCode,
		Country:     params.Country,
		IsDefault:   params.IsDefault,
	}
}

type PartyDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// toParcelSummary keeps only the projected fields so that unrequested ones
// are absent from the JSON rather than zero.
func toParcelSummary(v queries.ParcelView, fields []string) map[string]any {
	out := make(map[string]any, len(fields)+1)
	out["id"] = v.ID.String()

	for _, f := range fields {
		switch f {
		case "trackingId":
			out[f] = v.TrackingID
		case "status":
			out[f] = v.Status
		case "priority":
			out[f] = v.Priority
		case "parcelType":
			out[f] = v.ParcelType
		case "deliveryFee":
			out[f] = v.DeliveryFee
		case "weight":
			out[f] = v.Weight
		case "distance":
			out[f] = v.Distance
		case "remarks":
			out[f] = v.Remarks
		case "sender":
			out[f] = PartyDTO{Name: v.Sender.Name, Phone: v.Sender.Phone}
		case "receiver":
			out[f] = PartyDTO{Name: v.Receiver.Name, Phone: v.Receiver.Phone}
		case "createdAt":
			out[f] = v.CreatedAt.UTC().Format(timeLayout)
		case "updatedAt":
			out[f] = v.UpdatedAt.UTC().Format(timeLayout)
		}
	}

	return out
}

type RiderProfileDTO struct {
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
	LicenseNumber string `json:"licenseNumber"`
	AssignedHub   string `json:"assignedHub"`
	Availability  string `json:"availability"`
}

// UserDTO never carries the password hash.
type UserDTO struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone,omitempty"`
	Role         string           `json:"role"`
	Addresses    []AddressDTO     `json:"addresses"`
	RiderProfile *RiderProfileDTO `json:"riderProfile,omitempty"`
}

func toUserDTO(u *user.User) UserDTO {
	addresses := make([]AddressDTO, 0, len(u.Addresses()))
	for _, a := range u.Addresses() {
		addresses = append(addresses, toAddressDTO(a))
	}

	dto := UserDTO{
		ID:        u.ID().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		Addresses: addresses,
	}
	if rp := u.RiderProfile(); rp != nil {
		dto.RiderProfile = &RiderProfileDTO{
			VehicleType:   string(rp.VehicleType()),
			VehicleNumber: rp.VehicleNumber(),
			LicenseNumber: rp.LicenseNumber(),
			AssignedHub:   rp.AssignedHub().String(),
			Availability:  rp.Availability().String(),
		}
	}
	return dto
}

func fromUserView(v queries.UserView) UserDTO {
	dto := UserDTO{
		ID:    v.ID.String(),
		Name:  v.Name,
		Email: v.Email,
		Phone: v.Phone,
		Role:  v.Role,
	}
	if v.Rider != nil {
		dto.RiderProfile = &RiderProfileDTO{
			VehicleType:   v.Rider.VehicleType,
			VehicleNumber: v.Rider.VehicleNumber,
			LicenseNumber: v.Rider.LicenseNumber,
			AssignedHub:   v.Rider.AssignedHub.String(),
			Availability:  v.Rider.Availability,
		}
	}
	return dto
}

type LoginResponse struct {
	AccessToken      string  `json:"accessToken"`
	ExpiresAt        string  `json:"expiresAt"`
	RefreshToken     string  `json:"refreshToken"`
	RefreshExpiresAt string  `json:"refreshExpiresAt"`
	User             UserDTO `json:"user"`
}

func toLoginResponse(s auth.Session) LoginResponse {
	return LoginResponse{
		AccessToken:      s.AccessToken,
		ExpiresAt:        s.ExpiresAt.UTC().Format(timeLayout),
		RefreshToken:     s.RefreshToken,
		RefreshExpiresAt: s.RefreshExpiresAt.UTC().Format(timeLayout),
		User:             toUserDTO(s.User),
	}
}

type HubDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	ContactNumber string   `json:"contactNumber"`
	CoveredArea   []string `json:"coveredArea"`
}

func toHubDTO(h *hub.Hub) HubDTO {
	return HubDTO{
		ID:            h.ID().String(),
		Name:          h.Name(),
		Location:      h.Location(),
		ContactNumber: h.ContactNumber(),
		CoveredArea:   h.CoveredAreas(),
	}
}

func fromHubView(v queries.HubView) HubDTO {
	return HubDTO{
		ID:            v.ID.String(),
		Name:          v.Name,
		Location:      v.Location,
		ContactNumber: v.ContactNumber,
		CoveredArea:   v.CoveredAreas,
	}
}

type RiderDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
	LicenseNumber string `json:"licenseNumber"`
	Availability  string `json:"availability"`
}

func fromRiderView(v queries.RiderView) RiderDTO {
	return RiderDTO{
		ID:            v.ID.String(),
		Name:          v.Name,
		Email:         v.Email,
		Phone:         v.Phone,
		VehicleType:   v.VehicleType,
		VehicleNumber: v.VehicleNumber,
		LicenseNumber: v.LicenseNumber,
		Availability:  v.Availability,
	}
}

type FeeConfigDTO struct {
	ID         string   `json:"id"`
	ParcelType string   `json:"parcelType"`
	FeeType    string   `json:"feeType"`
	BaseFee    float64  `json:"baseFee"`
	WeightRate *float64 `json:"weightRate,omitempty"`
}

func toFeeConfigDTO(c *fee.FeeConfig) FeeConfigDTO {
	return FeeConfigDTO{
		ID:         c.ID().String(),
		ParcelType: c.ParcelType().String(),
		FeeType:    c.FeeType().String(),
		BaseFee:    c.BaseFee(),
		WeightRate: c.WeightRate(),
	}
}

func fromFeeConfigView(v queries.FeeConfigView) FeeConfigDTO {
	return FeeConfigDTO{
		ID:         v.ID.String(),
		ParcelType: v.ParcelType,
		FeeType:    v.FeeType,
		BaseFee:    v.BaseFee,
		WeightRate: v.WeightRate,
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
