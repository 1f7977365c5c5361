package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/draftea/offer-system/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	mu         sync.Mutex
	messages   []types.Message
	deleted    []string
	visibility []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	out := &sqs.ReceiveMessageOutput{Messages: f.messages}
	f.messages = nil
	return out, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQS) ChangeMessageVisibility(_ context.Context, params *sqs.ChangeMessageVisibilityInput, _ ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility = append(f.visibility, aws.ToString(params.ReceiptHandle))
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

func (f *fakeSQS) snapshot() (deleted, visibility []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...), append([]string(nil), f.visibility...)
}

func envelopeMessage(t *testing.T, id, topic, receipt string, payload any) types.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(events.Envelope{
		ID:        id,
		Topic:     topic,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)
	return types.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String(receipt),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestSQSEventSubscriber_AcksSuccessAndMalformedAndDelaysFailure(t *testing.T) {
	client := &fakeSQS{
		messages: []types.Message{
			envelopeMessage(t, "m-1", events.OfferAssignmentRequestedEvent, "r-ok", map[string]int{"offer_id": 1}),
			envelopeMessage(t, "m-2", events.OfferCancellationRequestedEvent, "r-fail", map[string]int{"offer_id": 2}),
			{MessageId: aws.String("m-3"), ReceiptHandle: aws.String("r-bad"), Body: aws.String("{not json")},
		},
	}

	var mu sync.Mutex
	var seen []string
	handler := NewEventHandlerFunc("test", func(_ context.Context, event *events.Event) error {
		mu.Lock()
		seen = append(seen, event.EventType)
		mu.Unlock()

		receipt, _ := event.Metadata.Get(SQSReceiptHandleKey)
		if receipt == "r-fail" {
			return errors.New("boom")
		}
		return nil
	})

	subscriber := NewSQSEventSubscriber(client, "queue", handler,
		WithWorkers(2),
		WithSleepTimeAfterEmptyReceive(5*time.Millisecond),
	)
	require.NoError(t, subscriber.Start(context.Background()))

	require.Eventually(t, func() bool {
		deleted, visibility := client.snapshot()
		return len(deleted) == 2 && len(visibility) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, subscriber.Stop(context.Background()))

	deleted, visibility := client.snapshot()
	assert.ElementsMatch(t, []string{"r-ok", "r-bad"}, deleted)
	assert.Equal(t, []string{"r-fail"}, visibility)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{events.OfferAssignmentRequestedEvent, events.OfferCancellationRequestedEvent}, seen)
}

func TestTopicFilterHandler(t *testing.T) {
	var calls int
	inner := NewEventHandlerFunc("inner", func(context.Context, *events.Event) error {
		calls++
		return nil
	})
	filter := &topicFilterHandler{pattern: "offer.#", handler: inner}

	require.NoError(t, filter.Handle(context.Background(), events.NewEvent("1", events.OfferAssignmentRequestedEvent, nil)))
	require.NoError(t, filter.Handle(context.Background(), events.NewEvent("1", "seller.updated", nil)))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "inner", filter.HandlerID())
}
