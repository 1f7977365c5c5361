package handlers

import (
	"testing"
	"time"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/offers-service/mocks"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/models"
	"github.com/go-chi/chi/v5"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store     *mocks.MockOfferStore
	tx        *mocks.MockOfferTx
	sellers   *mocks.MockSellerRepository
	purchase  *mocks.MockPurchaseClient
	transport *mocks.MockTransportClient
	journal   *mocks.MockAssignmentJournal
	publisher *mocks.MockPublisher

	http     *OfferHandlers
	commands *OfferCommandHandlers
	router   chi.Router
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		store:     mocks.NewMockOfferStore(t),
		tx:        mocks.NewMockOfferTx(t),
		sellers:   mocks.NewMockSellerRepository(t),
		purchase:  mocks.NewMockPurchaseClient(t),
		transport: mocks.NewMockTransportClient(t),
		journal:   mocks.NewMockAssignmentJournal(t),
		publisher: mocks.NewMockPublisher(t),
	}

	logger := logging.Discard()
	assign := application.NewAssignOffer(f.store, f.purchase, f.transport, f.journal, f.publisher, logger)
	cancel := application.NewCancelOffer(f.store, f.publisher, logger)

	f.http = NewOfferHandlers(
		application.NewCreateOffer(f.store, f.sellers, f.publisher, logger),
		application.NewGetOffer(f.store),
		application.NewListOffers(f.store),
		application.NewUpdateOffer(f.store, f.publisher, logger),
		assign,
		cancel,
		application.NewListSellers(f.sellers),
		logger,
	)
	f.commands = NewOfferCommandHandlers(assign, cancel, logger)

	router := chi.NewRouter()
	f.http.RegisterRoutes(router)
	f.router = router

	return f
}

func newTestOffer(id int64, status domain.Status) *domain.Offer {
	offer := &domain.Offer{
		ID:       id,
		SellerID: 7,
		Seller:   domain.SellerSnapshot{NetworkID: "NET-7", Name: "Acme Motors"},
		Details: domain.Details{
			Vehicle:  domain.Vehicle{Year: "2019", Make: "Honda", Model: "Accord"},
			Location: domain.Location{ZipCode: "12345"},
		},
		Status:        status,
		SearchIndexID: models.ID("550e8400-e29b-41d4-a716-446655440000"),
		Timestamps:    models.NewTimestamps(testNow),
		Version:       models.NewVersion(),
	}
	if status == domain.StatusAssigned {
		offer.Assignment = &domain.Assignment{
			PurchaseID:   "P0",
			TransportID:  "T0",
			BuyerID:      99,
			CarrierID:    98,
			BuyerZipCode: "00000",
		}
	}
	return offer
}
