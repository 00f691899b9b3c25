package parcel

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

// TrackingLog is one entry of a parcel's append-only history.
type TrackingLog struct {
	id          kernel.UUID
	status      Status
	updatedBy   kernel.UUID
	description string
	at          time.Time
}

// NewTrackingLog builds a log entry. It is also used to restore persisted entries.
func NewTrackingLog(id kernel.UUID, status Status, updatedBy kernel.UUID, description string, at time.Time) (TrackingLog, error) {
	var zeroTime error
	if at.IsZero() {
		zeroTime = errors.New("tracking log timestamp is required")
	}
	if err := errors.Join(id.Validate(), status.Validate(), updatedBy.Validate(), zeroTime); err != nil {
		return TrackingLog{}, err
	}
	return TrackingLog{
		id:          id,
		status:      status,
		updatedBy:   updatedBy,
		description: description,
		at:          at,
	}, nil
}

func (l TrackingLog) ID() kernel.UUID {
	return l.id
}

func (l TrackingLog) Status() Status {
	return l.status
}

func (l TrackingLog) UpdatedBy() kernel.UUID {
	return l.updatedBy
}

func (l TrackingLog) Description() string {
	return l.description
}

func (l TrackingLog) At() time.Time {
	return l.at
}
