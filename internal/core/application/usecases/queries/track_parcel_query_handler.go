package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelReader is the read side of the parcel repository.
type ParcelReader interface {
	GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error)
}

// TrackParcelQueryHandler returns a parcel with its full tracking log to the
// people involved in it. A missing parcel is errs.ObjectNotFoundError, a
// stranger gets errs.UnauthorizedError.
type TrackParcelQueryHandler struct {
	parcels ParcelReader
}

func NewTrackParcelQueryHandler(parcels ParcelReader) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{parcels: parcels}
}

func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (*parcel.Parcel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p, err := h.parcels.GetByTrackingID(ctx, query.TrackingID())
	if err != nil {
		return nil, err
	}

	if err = p.CanBeReadBy(query.Actor()); err != nil {
		return nil, err
	}

	return p, nil
}
