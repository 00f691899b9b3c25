package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery looks a parcel up by its public tracking id.
type TrackParcelQuery struct {
	actor      kernel.Actor
	trackingID parcel.TrackingID

	guard guard.ConstructorGuard
}

func NewTrackParcelQuery(actor kernel.Actor, trackingID string) (TrackParcelQuery, error) {
	id, err := parcel.ParseTrackingID(trackingID)
	if err = errors.Join(actor.Validate(), err); err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		actor:      actor,
		trackingID: id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

func (q TrackParcelQuery) Actor() kernel.Actor {
	return q.actor
}

func (q TrackParcelQuery) TrackingID() parcel.TrackingID {
	return q.trackingID
}
