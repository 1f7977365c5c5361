package infrastructure

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/offer-system/shared/events"
	"github.com/pkg/errors"
)

var _ events.Subscriber = (*SQSSubscriberAdapter)(nil)

// SQSSubscriberAdapter adapts SQSEventSubscriber to the events.Subscriber interface
type SQSSubscriberAdapter struct {
	mu            sync.Mutex
	sqsSubscriber *SQSEventSubscriber
	client        sqsAPI
	queueURL      string
	logger        *slog.Logger
	opts          []SQSSubscriberOption
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(ctx context.Context, awsOpts AWSOptions, queueURL string, logger *slog.Logger, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	cfg, err := LoadAWSConfig(ctx, awsOpts)
	if err != nil {
		return nil, err
	}

	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if awsOpts.EndpointSQS != "" {
			o.BaseEndpoint = aws.String(awsOpts.EndpointSQS)
		}
	})

	if logger == nil {
		logger = slog.Default()
	}

	return &SQSSubscriberAdapter{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
		opts:     opts,
	}, nil
}

// topicFilterHandler drops events whose topic does not match the subscription pattern.
// Dropped events are acknowledged.
type topicFilterHandler struct {
	pattern events.Topic
	handler events.EventHandler
}

func (a *topicFilterHandler) HandlerID() string {
	if h, ok := a.handler.(interface{ HandlerID() string }); ok {
		return h.HandlerID()
	}
	return "event-handler-adapter"
}

func (a *topicFilterHandler) Handle(ctx context.Context, event *events.Event) error {
	if a.pattern != "" && !event.Topic.Matches(a.pattern) {
		return nil
	}
	return a.handler.Handle(ctx, event)
}

// Subscribe starts consuming the queue. eventType is a topic pattern ("" for all).
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sqsSubscriber != nil {
		return errors.New("subscriber is already running")
	}

	opts := append([]SQSSubscriberOption{WithLogger(s.logger)}, s.opts...)
	adapted := &topicFilterHandler{pattern: events.Topic(eventType), handler: handler}
	subscriber := NewSQSEventSubscriber(s.client, s.queueURL, adapted, opts...)

	if err := subscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.sqsSubscriber = subscriber
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sqsSubscriber == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.sqsSubscriber.Stop(ctx); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.sqsSubscriber = nil
	return nil
}
