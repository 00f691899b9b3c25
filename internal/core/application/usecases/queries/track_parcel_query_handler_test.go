package queries_test

import (
	"context"
	"testing"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/modeltest"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelReader struct {
	mock.Mock
}

func (m *MockParcelReader) GetByTrackingID(ctx context.Context, trackingID parcel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func TestNewTrackParcelQuery_RejectsMalformedTrackingID(t *testing.T) {
	actor := modeltest.Actor(t, modeltest.Customer(t))
	_, err := queries.NewTrackParcelQuery(actor, "TRK-2025-1")
	require.True(t, errs.IsBadRequest(err))
}

func TestTrackParcelQueryHandler_Handle(t *testing.T) {
	sender := modeltest.Customer(t)
	receiver := modeltest.Customer(t)
	stranger := modeltest.Customer(t)
	hubID := kernel.NewUUID()
	pickupRider := modeltest.Rider(t, hubID, user.Available)
	deliveryRider := modeltest.Rider(t, hubID, user.Available)
	otherRider := modeltest.Rider(t, hubID, user.Available)

	p := modeltest.ParcelInStatus(t, sender.ID(), receiver.ID(), modeltest.Assignment{
		PickupHub:     hubID,
		DeliveryHub:   hubID,
		PickupRider:   pickupRider.ID(),
		DeliveryRider: deliveryRider.ID(),
	}, parcel.PickedUp)

	tests := []struct {
		name    string
		reader  *user.User
		wantErr error
	}{
		{"sender", sender, nil},
		{"receiver", receiver, nil},
		{"admin", modeltest.Admin(t), nil},
		{"pickup rider", pickupRider, nil},
		{"delivery rider", deliveryRider, nil},
		{"unrelated user", stranger, errs.ErrUnauthorized},
		{"unrelated rider", otherRider, errs.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			reader := new(MockParcelReader)
			reader.On("GetByTrackingID", ctx, p.TrackingID()).Return(p, nil).Once()

			q, err := queries.NewTrackParcelQuery(modeltest.Actor(t, tt.reader), p.TrackingID().String())
			require.NoError(t, err)

			got, err := queries.NewTrackParcelQueryHandler(reader).Handle(ctx, q)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p, got)
			reader.AssertExpectations(t)
		})
	}
}

func TestTrackParcelQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := modeltest.TrackingID(t)
	reader := new(MockParcelReader)
	reader.On("GetByTrackingID", ctx, id).Return(nil, errs.NewObjectNotFoundError("parcel", id)).Once()

	q, err := queries.NewTrackParcelQuery(modeltest.Actor(t, modeltest.Admin(t)), id.String())
	require.NoError(t, err)

	_, err = queries.NewTrackParcelQueryHandler(reader).Handle(ctx, q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTrackParcelQueryHandler_Handle_InvalidQuery(t *testing.T) {
	reader := new(MockParcelReader)
	_, err := queries.NewTrackParcelQueryHandler(reader).Handle(t.Context(), queries.TrackParcelQuery{})
	require.ErrorIs(t, err, queries.ErrTrackParcelQueryIsNotConstructed)
	reader.AssertNotCalled(t, "GetByTrackingID", mock.Anything, mock.Anything)
}
