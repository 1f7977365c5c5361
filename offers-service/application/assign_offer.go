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

// AssignOfferCommand represents the command to assign an offer to a buyer and carrier
type AssignOfferCommand struct {
	OfferID      int64  `json:"offer_id"`
	BuyerID      int64  `json:"buyer_id"`
	CarrierID    int64  `json:"carrier_id"`
	BuyerZipCode string `json:"buyer_zip_code"`
}

// AssignOffer orchestrates the assignment saga: purchase, then transport, then
// the offer row, all while holding the row lock. Every attempt is journaled
// outside the transaction so a purchase left behind by a rollback can be found.
type AssignOffer struct {
	offerStore      domain.OfferStore
	purchaseClient  domain.PurchaseClient
	transportClient domain.TransportClient
	journal         domain.AssignmentJournal
	eventPublisher  events.Publisher
	logger          *slog.Logger
	now             models.Clock
}

// NewAssignOffer creates a new AssignOffer use case
func NewAssignOffer(
	offerStore domain.OfferStore,
	purchaseClient domain.PurchaseClient,
	transportClient domain.TransportClient,
	journal domain.AssignmentJournal,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *AssignOffer {
	return &AssignOffer{
		offerStore:      offerStore,
		purchaseClient:  purchaseClient,
		transportClient: transportClient,
		journal:         journal,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             models.SystemClock,
	}
}

// Execute assigns the offer. On any error the offer row is unchanged.
func (uc *AssignOffer) Execute(ctx context.Context, cmd *AssignOfferCommand) (*OfferResponse, error) {
	ctx, op := startOperation(ctx, "assign_offer",
		attribute.Int64("offer_id", cmd.OfferID),
		attribute.Int64("buyer_id", cmd.BuyerID),
		attribute.Int64("carrier_id", cmd.CarrierID),
	)
	defer op.end(ctx)

	logger := logging.FromContext(ctx, uc.logger).With(slog.Int64("offer_id", cmd.OfferID))

	if err := domain.ValidateAssignee(cmd.BuyerID, cmd.CarrierID, cmd.BuyerZipCode); err != nil {
		return nil, op.fail(err)
	}

	offer, err := uc.offerStore.FindByID(ctx, cmd.OfferID)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to find offer"))
	}

	if offer == nil {
		return nil, op.fail(&domain.OfferNotFoundError{OfferID: cmd.OfferID})
	}

	// A denied transition must not reach the journal or any downstream service
	if !offer.Status.CanTransitionTo(domain.StatusAssigned) {
		return nil, op.fail(&domain.InvalidStateTransitionError{From: offer.Status, To: domain.StatusAssigned})
	}

	attempt := domain.NewAssignmentAttempt(cmd.OfferID, cmd.BuyerID, cmd.CarrierID, cmd.BuyerZipCode, uc.now())
	if err := uc.journal.Start(ctx, attempt); err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to start assignment attempt"))
	}
	op.span.SetAttributes(attribute.String("attempt_id", attempt.ID.String()))

	assigned, err := uc.assign(ctx, logger, attempt)
	if err != nil {
		attempt.Fail(err, uc.now())
		uc.saveAttempt(ctx, logger, attempt)
		if attempt.State == domain.AttemptCompensationRequired {
			logger.Error("assignment failed after purchase was created",
				slog.String("attempt_id", attempt.ID.String()),
				slog.String("purchase_id", attempt.PurchaseID),
				slog.Any("error", err),
			)
		}
		return nil, op.fail(err)
	}

	attempt.Complete(uc.now())
	uc.saveAttempt(ctx, logger, attempt)

	publishBestEffort(ctx, uc.eventPublisher, uc.logger, assigned.Events())
	assigned.ClearEvents()

	logger.Info("offer assigned",
		slog.String("purchase_id", attempt.PurchaseID),
		slog.String("transport_id", attempt.TransportID),
	)

	op.succeed()
	return newOfferResponse(assigned), nil
}

// assign runs the transactional part of the saga. The deferred rollback is a
// no-op once the transaction committed.
func (uc *AssignOffer) assign(ctx context.Context, logger *slog.Logger, attempt *domain.AssignmentAttempt) (*domain.Offer, error) {
	tx, err := uc.offerStore.BeginTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			logger.Warn("failed to roll back assignment transaction", slog.Any("error", err))
		}
	}()

	offer, err := tx.FindByIDForUpdate(ctx, attempt.OfferID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock offer")
	}

	if offer == nil {
		return nil, &domain.OfferNotFoundError{OfferID: attempt.OfferID}
	}

	// A concurrent assignment or cancellation may have won while we waited for the lock
	if !offer.Status.CanTransitionTo(domain.StatusAssigned) {
		return nil, &domain.InvalidStateTransitionError{From: offer.Status, To: domain.StatusAssigned}
	}

	purchaseID, err := uc.purchaseClient.CreatePurchase(ctx, domain.PurchaseRequest{
		OfferID:       offer.ID,
		BuyerID:       attempt.BuyerID,
		CorrelationID: offer.SearchIndexID,
	})
	if err == nil && purchaseID == "" {
		err = errors.New("empty purchase id")
	}
	if err != nil {
		return nil, domain.NewDownstreamCallFailed(domain.ServicePurchase, err)
	}

	attempt.PurchaseCreated(purchaseID, uc.now())
	uc.saveAttempt(ctx, logger, attempt)

	transportID, err := uc.transportClient.CreateTransport(ctx, domain.TransportRequest{
		OfferID:       offer.ID,
		PurchaseID:    purchaseID,
		SellerID:      offer.SellerID,
		BuyerID:       attempt.BuyerID,
		CarrierID:     attempt.CarrierID,
		SellerZipCode: offer.Details.Location.ZipCode,
		BuyerZipCode:  attempt.BuyerZipCode,
		Window:        domain.NextDayWindow(uc.now()),
		CorrelationID: offer.SearchIndexID,
	})
	if err == nil && transportID == "" {
		err = errors.New("empty transport id")
	}
	if err != nil {
		return nil, domain.NewDownstreamCallFailed(domain.ServiceTransport, err)
	}

	attempt.TransportCreated(transportID, uc.now())
	uc.saveAttempt(ctx, logger, attempt)

	err = offer.Assign(domain.Assignment{
		PurchaseID:   purchaseID,
		TransportID:  transportID,
		BuyerID:      attempt.BuyerID,
		CarrierID:    attempt.CarrierID,
		BuyerZipCode: attempt.BuyerZipCode,
	}, uc.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to assign offer")
	}

	if err := tx.Update(ctx, offer); err != nil {
		return nil, errors.Wrap(err, "failed to update offer")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit offer assignment")
	}

	return offer, nil
}

// saveAttempt persists journal progress. The offer row stays the record of
// truth, so a journal write failure is logged and the saga continues.
func (uc *AssignOffer) saveAttempt(ctx context.Context, logger *slog.Logger, attempt *domain.AssignmentAttempt) {
	if err := uc.journal.Save(ctx, attempt); err != nil {
		logger.Error("failed to save assignment attempt",
			slog.String("attempt_id", attempt.ID.String()),
			slog.String("state", string(attempt.State)),
			slog.Any("error", err),
		)
	}
}
