package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/offer-system/shared/events"
	"github.com/draftea/offer-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const maxBatchSize = 10

// snsAPI is the subset of the SNS client used by the publisher
type snsAPI interface {
	PublishBatch(ctx context.Context, params *sns.PublishBatchInput, optFns ...func(*sns.Options)) (*sns.PublishBatchOutput, error)
}

// SNSEventPublisher implements events.Publisher using AWS SNS
type SNSEventPublisher struct {
	client   snsAPI
	topicArn string
	logger   *slog.Logger
}

// NewSNSEventPublisher creates a new SNSEventPublisher
func NewSNSEventPublisher(client snsAPI, topicArn string, logger *slog.Logger) *SNSEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
		logger:   logger,
	}
}

// Publish publishes events to SNS in batches of ten
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	batchEvents := splitToChunks(evts, maxBatchSize)

	gr, ctx := errgroup.WithContext(ctx)

	for _, eventBatch := range batchEvents {
		eventBatch := eventBatch
		gr.Go(func() error {
			return p.batchPublish(ctx, eventBatch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, evts []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(evts))

	for i, event := range evts {
		envelope, err := event.ToEnvelope()
		if err != nil {
			return errors.Wrap(err, "failed to marshal payload")
		}

		msgJSON, err := json.Marshal(envelope)
		if err != nil {
			return errors.Wrap(err, "failed to marshal message")
		}

		attrs := map[string]types.MessageAttributeValue{
			"topic": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Topic)),
			},
		}

		for k, v := range event.Metadata {
			if k == SQSMessageIDKey || k == SQSReceiptHandleKey || v == "" {
				continue
			}

			attrs[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}

		requests[i] = types.PublishBatchRequestEntry{
			Id:                aws.String(event.ID.String()),
			Message:           aws.String(string(msgJSON)),
			MessageAttributes: attrs,
		}
	}

	res, err := p.client.PublishBatch(
		ctx,
		&sns.PublishBatchInput{
			TopicArn:                   &p.topicArn,
			PublishBatchRequestEntries: requests,
		},
	)
	if err != nil {
		for _, event := range evts {
			recordPublish(ctx, event.EventType, "error")
		}
		return errors.Wrap(err, "failed to publish batch to SNS")
	}

	failed := make(map[string]string, len(res.Failed))
	for _, entry := range res.Failed {
		failed[aws.ToString(entry.Id)] = aws.ToString(entry.Message)
	}

	var failedIDs []string
	for _, event := range evts {
		if reason, ok := failed[event.ID.String()]; ok {
			recordPublish(ctx, event.EventType, "error")
			p.logger.ErrorContext(ctx, "sns publish entry failed",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
				slog.String("reason", reason),
			)
			failedIDs = append(failedIDs, event.ID.String())
			continue
		}
		recordPublish(ctx, event.EventType, "success")
	}

	if len(failedIDs) > 0 {
		return errors.Errorf("failed to publish %d events to SNS: %s", len(failedIDs), strings.Join(failedIDs, ","))
	}

	return nil
}

func recordPublish(ctx context.Context, eventType, status string) {
	telemetry.RecordCounter(ctx, "events_published_total", "Total events published", 1,
		attribute.String("event_type", eventType),
		attribute.String("status", status),
	)
}

// splitToChunks splits slice into chunks of specified size
func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}
