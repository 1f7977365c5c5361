package application

import (
	"context"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// GetOfferQuery represents the query to get an offer
type GetOfferQuery struct {
	OfferID int64 `json:"offer_id"`
}

// GetOffer use case handles retrieving an offer
type GetOffer struct {
	offerRepository domain.OfferRepository
}

// NewGetOffer creates a new GetOffer use case
func NewGetOffer(offerRepository domain.OfferRepository) *GetOffer {
	return &GetOffer{
		offerRepository: offerRepository,
	}
}

// Execute retrieves an offer by id
func (uc *GetOffer) Execute(ctx context.Context, query *GetOfferQuery) (*OfferResponse, error) {
	ctx, op := startOperation(ctx, "get_offer", attribute.Int64("offer_id", query.OfferID))
	defer op.end(ctx)

	offer, err := uc.offerRepository.FindByID(ctx, query.OfferID)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to find offer"))
	}

	if offer == nil {
		return nil, op.fail(&domain.OfferNotFoundError{OfferID: query.OfferID})
	}

	op.succeed()
	return newOfferResponse(offer), nil
}
