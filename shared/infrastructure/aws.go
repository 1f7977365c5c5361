package infrastructure

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/pkg/errors"
)

// AWSOptions holds the connection settings shared by the SNS and SQS adapters
type AWSOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointSNS     string
	EndpointSQS     string
}

// LoadAWSConfig loads the default AWS config, applying region and static credentials when set.
// Works with LocalStack when the endpoints point at it.
func LoadAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load AWS config")
	}

	return cfg, nil
}
