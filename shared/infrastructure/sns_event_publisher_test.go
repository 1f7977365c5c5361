package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/offer-system/shared/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	mu      sync.Mutex
	inputs  []*sns.PublishBatchInput
	failIDs map[string]bool
	err     error
}

func (f *fakeSNS) PublishBatch(_ context.Context, params *sns.PublishBatchInput, _ ...func(*sns.Options)) (*sns.PublishBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}

	out := &sns.PublishBatchOutput{}
	for _, entry := range params.PublishBatchRequestEntries {
		if f.failIDs[aws.ToString(entry.Id)] {
			out.Failed = append(out.Failed, types.BatchResultErrorEntry{
				Id:      entry.Id,
				Message: aws.String("throttled"),
			})
		}
	}
	return out, nil
}

func TestSNSEventPublisher_Publish(t *testing.T) {
	t.Run("splits into batches and writes envelope", func(t *testing.T) {
		client := &fakeSNS{}
		publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:offer-events", nil)

		evts := make([]*events.Event, 0, 12)
		for i := 0; i < 12; i++ {
			evts = append(evts, events.NewEvent("1", events.OfferUpdatedEvent, map[string]int{"n": i}).
				WithMetadata("source", "offers-service"))
		}

		require.NoError(t, publisher.Publish(context.Background(), evts...))
		require.Len(t, client.inputs, 2)

		total := 0
		for _, in := range client.inputs {
			total += len(in.PublishBatchRequestEntries)
		}
		assert.Equal(t, 12, total)

		entry := client.inputs[0].PublishBatchRequestEntries[0]
		assert.Equal(t, events.OfferUpdatedEvent, aws.ToString(entry.MessageAttributes["topic"].StringValue))
		assert.Equal(t, "offers-service", aws.ToString(entry.MessageAttributes["source"].StringValue))

		var env events.Envelope
		require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Message)), &env))
		assert.Equal(t, events.OfferUpdatedEvent, env.Topic)
		assert.Equal(t, "1", env.AggregateID)
	})

	t.Run("no events is a no-op", func(t *testing.T) {
		client := &fakeSNS{}
		publisher := NewSNSEventPublisher(client, "arn", nil)
		require.NoError(t, publisher.Publish(context.Background()))
		assert.Empty(t, client.inputs)
	})

	t.Run("client error", func(t *testing.T) {
		client := &fakeSNS{err: errors.New("connection refused")}
		publisher := NewSNSEventPublisher(client, "arn", nil)

		err := publisher.Publish(context.Background(), events.NewEvent("1", events.OfferCreatedEvent, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish batch to SNS")
	})

	t.Run("partial failure is reported", func(t *testing.T) {
		ok := events.NewEvent("1", events.OfferCreatedEvent, nil)
		bad := events.NewEvent("2", events.OfferCreatedEvent, nil)
		client := &fakeSNS{failIDs: map[string]bool{bad.ID.String(): true}}
		publisher := NewSNSEventPublisher(client, "arn", nil)

		err := publisher.Publish(context.Background(), ok, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad.ID.String())
		assert.NotContains(t, err.Error(), ok.ID.String())
	})
}

func TestSplitToChunks(t *testing.T) {
	in := make([]int, 25)
	chunks := splitToChunks(in, 10)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[2], 5)
	assert.Nil(t, splitToChunks([]int{}, 10))
	assert.Equal(t, fmt.Sprint([][]int{{1}}), fmt.Sprint(splitToChunks([]int{1}, 10)))
}
