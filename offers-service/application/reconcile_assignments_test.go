package application

import (
	"context"
	"testing"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/offers-service/mocks"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAttempt(offerID int64, state domain.AttemptState, purchaseID, transportID string) *domain.AssignmentAttempt {
	return &domain.AssignmentAttempt{
		ID:           models.GenerateUUID(),
		OfferID:      offerID,
		BuyerID:      123,
		CarrierID:    456,
		BuyerZipCode: "67890",
		State:        state,
		PurchaseID:   purchaseID,
		TransportID:  transportID,
		Timestamps:   models.NewTimestamps(fixedNow.Add(-time.Hour)),
	}
}

func TestReconcileAssignments_Execute(t *testing.T) {
	tests := []struct {
		name       string
		attempt    *domain.AssignmentAttempt
		setupMocks func(*mocks.MockOfferStore, *mocks.MockAssignmentJournal, *mocks.MockPublisher)
		expected   ReconcileAssignmentsResponse
		finalState domain.AttemptState
	}{
		{
			name:    "offer already assigned with this purchase completes",
			attempt: newTestAttempt(1, domain.AttemptTransportCreated, "P0", "T0"),
			setupMocks: func(repo *mocks.MockOfferStore, journal *mocks.MockAssignmentJournal, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusAssigned), nil).Once()
				journal.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expected:   ReconcileAssignmentsResponse{Scanned: 1, Completed: 1},
			finalState: domain.AttemptCompleted,
		},
		{
			name:    "orphaned purchase requests compensation",
			attempt: newTestAttempt(1, domain.AttemptCompensationRequired, "P1", ""),
			setupMocks: func(repo *mocks.MockOfferStore, journal *mocks.MockAssignmentJournal, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					payload, ok := evt.Data.(domain.OfferAssignmentOrphaned)
					return ok && evt.EventType == events.OfferAssignmentOrphanedEvent &&
						payload.PurchaseID == "P1" && payload.TransportID == nil &&
						evt.CorrelationID == testSearchIndexID
				})).Return(nil).Once()
				journal.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expected:   ReconcileAssignmentsResponse{Scanned: 1, CompensationRequested: 1},
			finalState: domain.AttemptCompensationRequested,
		},
		{
			name:    "purchase differs from the committed one",
			attempt: newTestAttempt(1, domain.AttemptTransportCreated, "P1", "T1"),
			setupMocks: func(repo *mocks.MockOfferStore, journal *mocks.MockAssignmentJournal, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusAssigned), nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					payload, ok := evt.Data.(domain.OfferAssignmentOrphaned)
					return ok && payload.TransportID != nil && *payload.TransportID == "T1"
				})).Return(nil).Once()
				journal.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expected:   ReconcileAssignmentsResponse{Scanned: 1, CompensationRequested: 1},
			finalState: domain.AttemptCompensationRequested,
		},
		{
			name:    "abandoned before purchase fails",
			attempt: newTestAttempt(1, domain.AttemptStarted, "", ""),
			setupMocks: func(repo *mocks.MockOfferStore, journal *mocks.MockAssignmentJournal, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				journal.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expected:   ReconcileAssignmentsResponse{Scanned: 1, Failed: 1},
			finalState: domain.AttemptFailed,
		},
		{
			name:    "publish failure leaves attempt for next pass",
			attempt: newTestAttempt(1, domain.AttemptPurchaseCreated, "P1", ""),
			setupMocks: func(repo *mocks.MockOfferStore, journal *mocks.MockAssignmentJournal, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, int64(1)).Return(newTestOffer(1, domain.StatusOffered), nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("sns down")).Once()
			},
			expected:   ReconcileAssignmentsResponse{Scanned: 1, Skipped: 1},
			finalState: domain.AttemptPurchaseCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockOfferStore(t)
			journal := mocks.NewMockAssignmentJournal(t)
			publisher := mocks.NewMockPublisher(t)
			journal.EXPECT().ListUnresolved(mock.Anything, fixedNow.Add(-5*time.Minute), 50).
				Return([]*domain.AssignmentAttempt{tt.attempt}, nil).Once()
			tt.setupMocks(repo, journal, publisher)

			uc := NewReconcileAssignments(repo, journal, publisher, testLogger)
			uc.now = fixedClock

			resp, err := uc.Execute(context.Background(), &ReconcileAssignmentsCommand{
				OlderThan: 5 * time.Minute,
				Limit:     50,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, *resp)
			assert.Equal(t, tt.finalState, tt.attempt.State)
		})
	}
}

func TestReconcileAssignments_ListError(t *testing.T) {
	journal := mocks.NewMockAssignmentJournal(t)
	journal.EXPECT().ListUnresolved(mock.Anything, mock.Anything, defaultReconcileBatchSize).
		Return(nil, errors.New("db down")).Once()

	uc := NewReconcileAssignments(mocks.NewMockOfferStore(t), journal, mocks.NewMockPublisher(t), testLogger)

	_, err := uc.Execute(context.Background(), &ReconcileAssignmentsCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list unresolved assignment attempts")
}

func TestReconcileAssignments_RunStopsWithContext(t *testing.T) {
	journal := mocks.NewMockAssignmentJournal(t)
	journal.EXPECT().ListUnresolved(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	uc := NewReconcileAssignments(mocks.NewMockOfferStore(t), journal, mocks.NewMockPublisher(t), testLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := uc.Run(ctx, 10*time.Millisecond, ReconcileAssignmentsCommand{})

	assert.NoError(t, err)
}
