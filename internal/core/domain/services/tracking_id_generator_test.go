package services_test

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingIDGenerator_Next(t *testing.T) {
	clock := func() time.Time { return time.Date(2025, 12, 31, 8, 0, 0, 0, time.UTC) }

	t.Run("uses clock date and six digits", func(t *testing.T) {
		id, err := services.NewTrackingIDGenerator(clock).Next()

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^TRK-20251231-\d{6}$`), id.String())
		_, err = parcel.ParseTrackingID(id.String())
		assert.NoError(t, err)
	})

	t.Run("zero random source yields zero suffix", func(t *testing.T) {
		g := services.NewTrackingIDGeneratorWithSource(clock, bytes.NewReader(make([]byte, 64)))

		id, err := g.Next()

		require.NoError(t, err)
		assert.Equal(t, "TRK-20251231-000000", id.String())
	})

	t.Run("exhausted random source fails", func(t *testing.T) {
		g := services.NewTrackingIDGeneratorWithSource(clock, bytes.NewReader(nil))

		_, err := g.Next()

		assert.Error(t, err)
	})
}
