package application

import (
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/models"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

const testSearchIndexID = models.ID("550e8400-e29b-41d4-a716-446655440000")

func fixedClock() time.Time {
	return fixedNow
}

var testLogger = logging.Discard()

func newTestOffer(id int64, status domain.Status) *domain.Offer {
	offer := &domain.Offer{
		ID:       id,
		SellerID: 7,
		Seller: domain.SellerSnapshot{
			NetworkID: "NET-7",
			Name:      "Acme Motors",
		},
		Details: domain.Details{
			Vehicle: domain.Vehicle{
				VIN:   "1HGCM82633A004352",
				Year:  "2019",
				Make:  "Honda",
				Model: "Accord",
				Trim:  "EX",
			},
			Location:  domain.Location{ZipCode: "12345"},
			Condition: domain.Condition{Mileage: 42000},
		},
		Status:        status,
		SearchIndexID: testSearchIndexID,
		Timestamps:    models.NewTimestamps(fixedNow.Add(-24 * time.Hour)),
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

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
