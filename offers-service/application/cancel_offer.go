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

// CancelOfferCommand represents the command to cancel an offer
type CancelOfferCommand struct {
	OfferID int64 `json:"offer_id"`
}

// CancelOffer use case
type CancelOffer struct {
	offerRepository domain.OfferRepository
	eventPublisher  events.Publisher
	logger          *slog.Logger
	now             models.Clock
}

// NewCancelOffer creates a new CancelOffer use case
func NewCancelOffer(
	offerRepository domain.OfferRepository,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *CancelOffer {
	return &CancelOffer{
		offerRepository: offerRepository,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             models.SystemClock,
	}
}

// Execute cancels an offered or assigned offer
func (uc *CancelOffer) Execute(ctx context.Context, cmd *CancelOfferCommand) (*OfferResponse, error) {
	ctx, op := startOperation(ctx, "cancel_offer", attribute.Int64("offer_id", cmd.OfferID))
	defer op.end(ctx)

	offer, err := uc.offerRepository.FindByID(ctx, cmd.OfferID)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to find offer"))
	}

	if offer == nil {
		return nil, op.fail(&domain.OfferNotFoundError{OfferID: cmd.OfferID})
	}

	previous := offer.Status
	if err := offer.Cancel(uc.now()); err != nil {
		return nil, op.fail(err)
	}

	if err := uc.offerRepository.Update(ctx, offer); err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to update offer"))
	}

	publishBestEffort(ctx, uc.eventPublisher, uc.logger, offer.Events())
	offer.ClearEvents()

	logging.FromContext(ctx, uc.logger).Info("offer canceled",
		slog.Int64("offer_id", offer.ID),
		slog.String("previous_status", previous.String()),
	)

	op.succeed()
	return newOfferResponse(offer), nil
}
