package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
)

// TrackingIDGenerator issues TRK-<YYYYMMDD>-<NNNNNN> ids from a clock and a
// cryptographic random source. Ids are not deduplicated here; the storage
// unique index rejects collisions and the caller retries.
type TrackingIDGenerator struct {
	clock  func() time.Time
	random io.Reader
}

func NewTrackingIDGenerator(clock func() time.Time) TrackingIDGenerator {
	return NewTrackingIDGeneratorWithSource(clock, rand.Reader)
}

// NewTrackingIDGeneratorWithSource allows a deterministic random source in tests.
func NewTrackingIDGeneratorWithSource(clock func() time.Time, random io.Reader) TrackingIDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return TrackingIDGenerator{clock: clock, random: random}
}

// Next returns a fresh tracking id dated by the generator's clock.
func (g TrackingIDGenerator) Next() (parcel.TrackingID, error) {
	n, err := rand.Int(g.random, big.NewInt(parcel.TrackingIDSpace))
	if err != nil {
		return parcel.TrackingID{}, fmt.Errorf("generate tracking id: %w", err)
	}
	return parcel.NewTrackingID(g.clock(), n.Int64())
}
