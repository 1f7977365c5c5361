package application

import (
	"context"
	"log/slog"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/models"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// UpdateOfferCommand represents a partial update of the vehicle attributes
type UpdateOfferCommand struct {
	OfferID int64 `json:"-"`
	domain.DetailsPatch
}

// UpdateOffer use case edits an offer while it is still offered
type UpdateOffer struct {
	offerRepository domain.OfferRepository
	eventPublisher  events.Publisher
	logger          *slog.Logger
	now             models.Clock
}

// NewUpdateOffer creates a new UpdateOffer use case
func NewUpdateOffer(
	offerRepository domain.OfferRepository,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *UpdateOffer {
	return &UpdateOffer{
		offerRepository: offerRepository,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             models.SystemClock,
	}
}

// Execute applies the supplied fields and persists the offer
func (uc *UpdateOffer) Execute(ctx context.Context, cmd *UpdateOfferCommand) (*OfferResponse, error) {
	ctx, op := startOperation(ctx, "update_offer", attribute.Int64("offer_id", cmd.OfferID))
	defer op.end(ctx)

	offer, err := uc.offerRepository.FindByID(ctx, cmd.OfferID)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to find offer"))
	}

	if offer == nil {
		return nil, op.fail(&domain.OfferNotFoundError{OfferID: cmd.OfferID})
	}

	if err := offer.Update(cmd.DetailsPatch, uc.now()); err != nil {
		return nil, op.fail(err)
	}

	if err := uc.offerRepository.Update(ctx, offer); err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to update offer"))
	}

	publishBestEffort(ctx, uc.eventPublisher, uc.logger, offer.Events())
	offer.ClearEvents()

	op.succeed()
	return newOfferResponse(offer), nil
}
