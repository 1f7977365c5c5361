package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// operation wraps a use case execution with a span and the offer operation metrics
type operation struct {
	name   string
	start  time.Time
	span   trace.Span
	status string
}

func startOperation(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	ctx, span := telemetry.StartSpan(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &operation{
		name:   name,
		start:  time.Now(),
		span:   span,
		status: "error",
	}
}

// fail records err on the span and returns it unchanged
func (op *operation) fail(err error) error {
	op.span.RecordError(err)
	op.span.SetStatus(codes.Error, err.Error())
	return err
}

func (op *operation) succeed() {
	op.status = "success"
}

func (op *operation) end(ctx context.Context) {
	duration := time.Since(op.start)

	telemetry.RecordCounter(ctx, "offer_operations_total", "Total offer operations", 1,
		attribute.String("operation", op.name),
		attribute.String("status", op.status),
	)
	telemetry.RecordHistogram(ctx, "offer_operation_duration_seconds", "Offer operation duration", duration.Seconds(),
		attribute.String("operation", op.name),
		attribute.String("status", op.status),
	)
	op.span.End()
}

// publishBestEffort publishes events after the offer change is already
// committed. Failures are logged and counted, never returned.
func publishBestEffort(ctx context.Context, publisher events.Publisher, logger *slog.Logger, evts []*events.Event) {
	if len(evts) == 0 {
		return
	}

	status := "success"
	if err := publisher.Publish(ctx, evts...); err != nil {
		status = "error"
		logging.FromContext(ctx, logger).Error("failed to publish offer events",
			slog.Int("count", len(evts)),
			slog.String("event_type", evts[0].EventType),
			slog.Any("error", err),
		)
	}

	for _, event := range evts {
		telemetry.RecordCounter(ctx, "offer_events_published_total", "Total offer events published", 1,
			attribute.String("event_type", event.EventType),
			attribute.String("status", status),
		)
	}
}
