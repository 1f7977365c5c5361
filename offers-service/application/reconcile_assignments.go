package application

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/draftea/offer-system/offers-service/domain"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/models"
	"github.com/draftea/offer-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const defaultReconcileBatchSize = 100

// ReconcileAssignmentsCommand selects the attempts to resolve
type ReconcileAssignmentsCommand struct {
	OlderThan time.Duration
	Limit     int
}

// ReconcileAssignmentsResponse counts how each attempt was resolved
type ReconcileAssignmentsResponse struct {
	Scanned               int `json:"scanned"`
	Completed             int `json:"completed"`
	CompensationRequested int `json:"compensation_requested"`
	Failed                int `json:"failed"`
	Skipped               int `json:"skipped"`
}

// ReconcileAssignments resolves assignment attempts that stopped before a final
// state. Purchases left behind are reported with offer.assignment.orphaned so
// the purchase owner can void them.
type ReconcileAssignments struct {
	offerRepository domain.OfferRepository
	journal         domain.AssignmentJournal
	eventPublisher  events.Publisher
	logger          *slog.Logger
	now             models.Clock
}

// NewReconcileAssignments creates a new ReconcileAssignments use case
func NewReconcileAssignments(
	offerRepository domain.OfferRepository,
	journal domain.AssignmentJournal,
	eventPublisher events.Publisher,
	logger *slog.Logger,
) *ReconcileAssignments {
	return &ReconcileAssignments{
		offerRepository: offerRepository,
		journal:         journal,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             models.SystemClock,
	}
}

// Execute runs one reconciliation pass
func (uc *ReconcileAssignments) Execute(ctx context.Context, cmd *ReconcileAssignmentsCommand) (*ReconcileAssignmentsResponse, error) {
	ctx, op := startOperation(ctx, "reconcile_assignments")
	defer op.end(ctx)

	limit := cmd.Limit
	if limit <= 0 {
		limit = defaultReconcileBatchSize
	}

	attempts, err := uc.journal.ListUnresolved(ctx, uc.now().Add(-cmd.OlderThan), limit)
	if err != nil {
		return nil, op.fail(errors.Wrap(err, "failed to list unresolved assignment attempts"))
	}

	resp := &ReconcileAssignmentsResponse{Scanned: len(attempts)}
	for _, attempt := range attempts {
		logger := logging.FromContext(ctx, uc.logger).With(
			slog.String("attempt_id", attempt.ID.String()),
			slog.Int64("offer_id", attempt.OfferID),
			slog.String("state", string(attempt.State)),
		)

		if err := uc.resolve(ctx, attempt, resp); err != nil {
			resp.Skipped++
			logger.Warn("assignment attempt left for the next pass", slog.Any("error", err))
			continue
		}

		if err := uc.journal.Save(ctx, attempt); err != nil {
			resp.Skipped++
			logger.Error("failed to save reconciled assignment attempt", slog.Any("error", err))
			continue
		}

		logger.Info("assignment attempt reconciled", slog.String("resolution", string(attempt.State)))
	}

	telemetry.RecordGauge(ctx, "offer_assignment_attempts_pending",
		"Assignment attempts left unresolved by the last reconciliation pass", float64(resp.Skipped))

	op.span.SetAttributes(
		attribute.Int("scanned", resp.Scanned),
		attribute.Int("compensation_requested", resp.CompensationRequested),
	)
	op.succeed()
	return resp, nil
}

func (uc *ReconcileAssignments) resolve(ctx context.Context, attempt *domain.AssignmentAttempt, resp *ReconcileAssignmentsResponse) error {
	offer, err := uc.offerRepository.FindByID(ctx, attempt.OfferID)
	if err != nil {
		return errors.Wrap(err, "failed to find offer")
	}

	now := uc.now()
	switch {
	case offer != nil && offer.Status == domain.StatusAssigned &&
		attempt.PurchaseID != "" && offer.PurchaseID() == attempt.PurchaseID:
		attempt.Complete(now)
		resp.Completed++

	case attempt.PurchaseID != "":
		if err := uc.requestCompensation(ctx, attempt, offer); err != nil {
			return err
		}
		attempt.CompensationRequested(now)
		resp.CompensationRequested++

	default:
		attempt.Fail(errors.New("assignment abandoned before a purchase was created"), now)
		resp.Failed++
	}
	return nil
}

func (uc *ReconcileAssignments) requestCompensation(ctx context.Context, attempt *domain.AssignmentAttempt, offer *domain.Offer) error {
	reason := attempt.LastError
	if reason == "" {
		reason = "assignment did not commit"
	}

	aggregateID := models.ID(strconv.FormatInt(attempt.OfferID, 10))
	event := events.NewEvent(aggregateID, events.OfferAssignmentOrphanedEvent, attempt.Orphaned(reason)).
		WithMetadata("attempt_id", attempt.ID.String()).
		WithMetadata("purchase_id", attempt.PurchaseID)
	if offer != nil {
		event = event.WithCorrelationID(offer.SearchIndexID)
	}

	if err := uc.eventPublisher.Publish(ctx, event); err != nil {
		return errors.Wrap(err, "failed to publish orphaned assignment")
	}

	telemetry.RecordCounter(ctx, "offer_orphaned_purchases_total", "Purchases reported for compensation", 1)
	return nil
}

// Run executes a pass every interval until ctx is done
func (uc *ReconcileAssignments) Run(ctx context.Context, interval time.Duration, cmd ReconcileAssignmentsCommand) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := uc.Execute(ctx, &cmd); err != nil {
				logging.FromContext(ctx, uc.logger).Error("assignment reconciliation failed", slog.Any("error", err))
			}
		}
	}
}
