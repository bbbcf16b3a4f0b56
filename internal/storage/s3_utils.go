package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ClientConfig selects the S3 compatible service that holds the containers.
// An empty Endpoint means AWS itself.
type S3ClientConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

func (c S3ClientConfig) staticCredentials() aws.CredentialsProvider {
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return nil
	}
	return credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")
}

func (c S3ClientConfig) awsConfig(ctx context.Context, creds aws.CredentialsProvider) (aws.Config, error) {
	var opts []func(*aws_config.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, aws_config.WithRegion(c.Region))
	}
	if creds != nil {
		opts = append(opts, aws_config.WithCredentialsProvider(creds))
	}
	return aws_config.LoadDefaultConfig(ctx, opts...)
}

func (c S3ClientConfig) newClient(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := c.awsConfig(ctx, c.staticCredentials())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		slog.Warn("no aws credentials found, using anonymous access", "endpoint", c.Endpoint, "error", err)
		if awsCfg, err = c.awsConfig(ctx, aws.AnonymousCredentials{}); err != nil {
			return nil, fmt.Errorf("failed to load anonymous aws config: %w", err)
		}
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		// MinIO
		o.UsePathStyle = true
	}), nil
}
