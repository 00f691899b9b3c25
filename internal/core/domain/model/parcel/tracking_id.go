package parcel

import (
	"fmt"
	"regexp"
	"time"

	"parcelhub/internal/pkg/errs"
)

const (
	trackingIDPrefix     = "TRK"
	trackingIDDateLayout = "20060102"

	// TrackingIDSpace is the number of distinct random suffixes per day.
	TrackingIDSpace = 1_000_000
)

var trackingIDPattern = regexp.MustCompile(`^TRK-(\d{8})-\d{6}$`)

// TrackingID is the public, immutable identifier of a parcel:
// TRK-<YYYYMMDD>-<6 digits>.
type TrackingID struct {
	value string
}

// NewTrackingID formats day and a suffix in [0, TrackingIDSpace).
func NewTrackingID(day time.Time, suffix int64) (TrackingID, error) {
	if suffix < 0 || suffix >= TrackingIDSpace {
		return TrackingID{}, errs.NewValueIsOutOfRangeError("tracking id suffix", suffix, 0, TrackingIDSpace-1)
	}
	return TrackingID{
		value: fmt.Sprintf("%s-%s-%06d", trackingIDPrefix, day.Format(trackingIDDateLayout), suffix),
	}, nil
}

// ParseTrackingID validates the format and the embedded date.
func ParseTrackingID(s string) (TrackingID, error) {
	m := trackingIDPattern.FindStringSubmatch(s)
	if m == nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId", fmt.Errorf("%q does not match TRK-YYYYMMDD-NNNNNN", s))
	}
	if _, err := time.Parse(trackingIDDateLayout, m[1]); err != nil {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId", err)
	}
	return TrackingID{value: s}, nil
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

func (t TrackingID) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("trackingId")
	}
	return nil
}
