package application

import (
	"context"
	"testing"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/offers-service/mocks"
	"github.com/draftea/offer-system/shared/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOffer_Execute(t *testing.T) {
	tests := []struct {
		name          string
		command       *UpdateOfferCommand
		setupMocks    func(*mocks.MockOfferStore, *mocks.MockPublisher)
		expectedError error
	}{
		{
			name: "updates only supplied fields",
			command: &UpdateOfferCommand{OfferID: 1, DetailsPatch: domain.DetailsPatch{
				Mileage: intPtr(50000),
				Trim:    stringPtr("Sport"),
			}},
			setupMocks: func(repo *mocks.MockOfferStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(o *domain.Offer) bool {
					return o.Details.Condition.Mileage == 50000 &&
						o.Details.Vehicle.Trim == "Sport" &&
						o.Details.Vehicle.Make == "Honda" &&
						o.Timestamps.UpdatedAt.Equal(fixedNow)
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OfferUpdatedEvent
				})).Return(nil).Once()
			},
		},
		{
			name:    "offer not found",
			command: &UpdateOfferCommand{OfferID: 9},
			setupMocks: func(repo *mocks.MockOfferStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(9)).Return(nil, nil).Once()
			},
			expectedError: domain.ErrOfferNotFound,
		},
		{
			name:    "assigned offer cannot be updated",
			command: &UpdateOfferCommand{OfferID: 1, DetailsPatch: domain.DetailsPatch{Mileage: intPtr(1)}},
			setupMocks: func(repo *mocks.MockOfferStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusAssigned), nil).Once()
			},
			expectedError: domain.ErrOfferCannotBeUpdated,
		},
		{
			name:    "canceled offer cannot be updated",
			command: &UpdateOfferCommand{OfferID: 1},
			setupMocks: func(repo *mocks.MockOfferStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusCanceled), nil).Once()
			},
			expectedError: domain.ErrOfferCannotBeUpdated,
		},
		{
			name:    "concurrent modification",
			command: &UpdateOfferCommand{OfferID: 1, DetailsPatch: domain.DetailsPatch{Mileage: intPtr(1)}},
			setupMocks: func(repo *mocks.MockOfferStore, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(domain.ErrConcurrentModification).Once()
			},
			expectedError: domain.ErrConcurrentModification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockOfferStore(t)
			publisher := mocks.NewMockPublisher(t)
			tt.setupMocks(repo, publisher)

			uc := NewUpdateOffer(repo, publisher, testLogger)
			uc.now = fixedClock

			resp, err := uc.Execute(context.Background(), tt.command)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "offered", resp.Status)
			assert.Equal(t, fixedNow, resp.LastModifiedAt)
		})
	}
}
