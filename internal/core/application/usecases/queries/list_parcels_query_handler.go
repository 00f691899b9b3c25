package queries

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Party is the contact summary of a sender or receiver.
type Party struct {
	Name  string
	Phone string
}

// ParcelView is one row of a parcel list. Fields outside the query's
// projection are left zero.
type ParcelView struct {
	ID          kernel.UUID
	TrackingID  string
	Status      string
	Priority    string
	ParcelType  string
	DeliveryFee float64
	Weight      *float64
	Distance    *float64
	Remarks     string
	Sender      Party
	Receiver    Party
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListParcelsQueryResponse struct {
	Data   []ParcelView
	Meta   Meta
	Fields []string
}

type parcelRow struct {
	ID            uuid.UUID
	TrackingID    string
	Status        int
	Priority      string
	ParcelType    string
	DeliveryFee   float64
	Weight        *float64
	Distance      *float64
	Remarks       string
	SenderName    string
	SenderPhone   string
	ReceiverName  string
	ReceiverPhone string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListParcelsQueryHandler pages through parcels joined with their sender,
// receiver and fee config.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) (ListParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListParcelsQueryResponse{}, err
	}

	if query.Scope().RiderOnly() && query.Actor().Role() != kernel.RoleRider {
		return ListParcelsQueryResponse{}, errs.NewForbiddenError("list rider parcels")
	}

	column, err := query.Scope().column()
	if err != nil {
		return ListParcelsQueryResponse{}, err
	}

	base := h.db.WithContext(ctx).
		Table("parcels AS p").
		Joins("JOIN users AS s ON s.id = p.sender_id").
		Joins("JOIN users AS r ON r.id = p.receiver_id").
		Joins("LEFT JOIN fee_configs AS f ON f.id = p.fee_config_id").
		Where(column+" = ?", query.Actor().UserID().Bytes())

	if query.search != "" {
		pattern := likePattern(query.search)
		base = base.Where("(p.tracking_id ILIKE ? OR p.remarks ILIKE ?)", pattern, pattern)
	}
	if query.status != nil {
		base = base.Where("p.status = ?", int(*query.status))
	}
	if query.priority != nil {
		base = base.Where("p.priority = ?", query.priority.String())
	}

	var total int64
	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListParcelsQueryResponse{}, err
	}

	rows := make([]parcelRow, 0)
	err = base.
		Select(query.columns()).
		Order(query.order).
		Order("p.id").
		Limit(query.page.Limit).
		Offset(query.page.offset()).
		Scan(&rows).Error
	if err != nil {
		return ListParcelsQueryResponse{}, err
	}

	views := make([]ParcelView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.toView()
		if viewErr != nil {
			return ListParcelsQueryResponse{}, viewErr
		}
		views = append(views, view)
	}

	return ListParcelsQueryResponse{
		Data:   views,
		Meta:   newMeta(query.page, total),
		Fields: query.Fields(),
	}, nil
}

func (r parcelRow) toView() (ParcelView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return ParcelView{}, err
	}

	view := ParcelView{
		ID:          id,
		TrackingID:  r.TrackingID,
		Priority:    r.Priority,
		ParcelType:  r.ParcelType,
		DeliveryFee: r.DeliveryFee,
		Weight:      r.Weight,
		Distance:    r.Distance,
		Remarks:     r.Remarks,
		Sender:      Party{Name: r.SenderName, Phone: r.SenderPhone},
		Receiver:    Party{Name: r.ReceiverName, Phone: r.ReceiverPhone},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Status != 0 {
		view.Status = parcel.Status(r.Status).String()
	}
	return view, nil
}
