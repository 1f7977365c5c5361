package infrastructure

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/draftea/offer-system/shared/events"
)

// SNSPublisherAdapter owns the SNS client and exposes it as an events.Publisher
type SNSPublisherAdapter struct {
	snsPublisher *SNSEventPublisher
}

// NewSNSPublisherAdapter creates a new SNS publisher adapter
func NewSNSPublisherAdapter(ctx context.Context, opts AWSOptions, topicArn string, logger *slog.Logger) (*SNSPublisherAdapter, error) {
	cfg, err := LoadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	snsClient := sns.NewFromConfig(cfg, func(o *sns.Options) {
		if opts.EndpointSNS != "" {
			o.BaseEndpoint = aws.String(opts.EndpointSNS)
		}
	})

	return &SNSPublisherAdapter{
		snsPublisher: NewSNSEventPublisher(snsClient, topicArn, logger),
	}, nil
}

// Publish implements events.Publisher interface
func (p *SNSPublisherAdapter) Publish(ctx context.Context, events ...*events.Event) error {
	return p.snsPublisher.Publish(ctx, events...)
}

// Close closes the publisher
func (p *SNSPublisherAdapter) Close() error {
	// SNS client doesn't need explicit closing
	return nil
}
