package handlers

import (
	"context"
	"log/slog"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/pkg/errors"
)

// OfferCommandHandlers dispatches command messages read from SQS
type OfferCommandHandlers struct {
	assignOffer *application.AssignOffer
	cancelOffer *application.CancelOffer
	logger      *slog.Logger
}

// NewOfferCommandHandlers creates new offer command handlers
func NewOfferCommandHandlers(
	assignOffer *application.AssignOffer,
	cancelOffer *application.CancelOffer,
	logger *slog.Logger,
) *OfferCommandHandlers {
	return &OfferCommandHandlers{
		assignOffer: assignOffer,
		cancelOffer: cancelOffer,
		logger:      logger,
	}
}

// Handle implements the events.EventHandler interface
func (h *OfferCommandHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.OfferAssignmentRequestedEvent:
		return h.HandleAssignmentRequest(ctx, event)
	case events.OfferCancellationRequestedEvent:
		return h.HandleCancellationRequest(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OfferCommandHandlers) HandlerID() string {
	return "offers-service-command-handler"
}

// HandleAssignmentRequest runs the assignment saga for a queued request
func (h *OfferCommandHandlers) HandleAssignmentRequest(ctx context.Context, event *events.Event) error {
	var cmd application.AssignOfferCommand
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return h.reject(ctx, event, errors.Wrap(domain.ErrInvalidCommand, err.Error()))
	}

	_, err := h.assignOffer.Execute(ctx, &cmd)
	if err != nil {
		return h.reject(ctx, event, err)
	}
	return nil
}

// HandleCancellationRequest cancels the offer named by a queued request
func (h *OfferCommandHandlers) HandleCancellationRequest(ctx context.Context, event *events.Event) error {
	var cmd application.CancelOfferCommand
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return h.reject(ctx, event, errors.Wrap(domain.ErrInvalidCommand, err.Error()))
	}

	_, err := h.cancelOffer.Execute(ctx, &cmd)
	if err != nil {
		return h.reject(ctx, event, err)
	}
	return nil
}

// reject acknowledges business rule rejections and downstream failures and
// hands anything else back to the subscriber for redelivery
func (h *OfferCommandHandlers) reject(ctx context.Context, event *events.Event, err error) error {
	logger := logging.FromContext(ctx, h.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("error", err.Error()),
	)

	if isBusinessRejection(err) {
		logger.Warn("command rejected")
		return nil
	}

	// A redelivery would rerun the saga and create another purchase. The
	// journal keeps the attempt for the reconciler.
	if errors.Is(err, domain.ErrDownstreamCallFailed) {
		logger.Error("command failed downstream, acknowledging without retry")
		return nil
	}

	logger.Error("command failed, leaving message for redelivery")
	return err
}

func isBusinessRejection(err error) bool {
	return errors.Is(err, domain.ErrOfferNotFound) ||
		errors.Is(err, domain.ErrSellerNotFound) ||
		errors.Is(err, domain.ErrInvalidStateTransition) ||
		errors.Is(err, domain.ErrOfferCannotBeUpdated) ||
		errors.Is(err, domain.ErrInvalidCommand)
}
