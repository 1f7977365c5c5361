package application

import (
	"context"
	"log/slog"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/models"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// CreateOfferCommand represents the command to create an offer
type CreateOfferCommand struct {
	SellerID int64 `json:"seller_id"`
	domain.Details
}

// CreateOffer use case registers a new offer for an existing seller
type CreateOffer struct {
	offerRepository  domain.OfferRepository
	sellerRepository domain.SellerRepository
	eventPublisher   events.Publisher
	logger           *slog.Logger
	now              models.Clock
}

// NewCreateOffer creates a new CreateOffer use case
func NewCreateOffer(
	offerRepository domain.OfferRepository,
	sellerRepository domain.SellerRepository,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *CreateOffer {
	return &CreateOffer{
		offerRepository:  offerRepository,
		sellerRepository: sellerRepository,
		eventPublisher:   eventPublisher,
		logger:           logger,
		now:              models.SystemClock,
	}
}

// Execute creates the offer in offered status with a snapshot of the seller
func (uc *CreateOffer) Execute(ctx context.Context, cmd *CreateOfferCommand) (*OfferResponse, error) {
	ctx, op := startOperation(ctx, "create_offer", attribute.Int64("seller_id", cmd.SellerID))
	defer op.end(ctx)

	if cmd.SellerID <= 0 {
		return nil, op.fail(domain.InvalidCommand("seller id must be positive"))
	}

	seller, err := uc.sellerRepository.FindByID(ctx, cmd.SellerID)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to find seller"))
	}

	if seller == nil {
		return nil, op.fail(&domain.SellerNotFoundError{SellerID: cmd.SellerID})
	}

	offer, err := domain.CreateOffer(seller, cmd.Details, uc.now())
	if err != nil {
		return nil, op.fail(err)
	}

	if err := uc.offerRepository.Add(ctx, offer); err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to save offer"))
	}

	offer.MarkCreated()
	publishBestEffort(ctx, uc.eventPublisher, uc.logger, offer.Events())
	offer.ClearEvents()

	logging.FromContext(ctx, uc.logger).Info("offer created",
		slog.Int64("offer_id", offer.ID),
		slog.Int64("seller_id", offer.SellerID),
	)

	op.span.SetAttributes(attribute.Int64("offer_id", offer.ID))
	op.succeed()
	return newOfferResponse(offer), nil
}
