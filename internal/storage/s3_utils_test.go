package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3ClientConfigStaticCredentials(t *testing.T) {
	assert.Nil(t, S3ClientConfig{AccessKeyID: "key"}.staticCredentials())
	assert.Nil(t, S3ClientConfig{SecretAccessKey: "secret"}.staticCredentials())

	cfg := S3ClientConfig{Region: "eu-west-1", AccessKeyID: "key", SecretAccessKey: "secret"}
	awsCfg, err := cfg.awsConfig(context.Background(), cfg.staticCredentials())
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", awsCfg.Region)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestS3ClientConfigEndpoint(t *testing.T) {
	cfg := S3ClientConfig{Endpoint: "http://localhost:9000", Region: "us-east-1", AccessKeyID: "key", SecretAccessKey: "secret"}
	client, err := cfg.newClient(context.Background())
	require.NoError(t, err)

	opts := client.Options()
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "us-east-1", opts.Region)
}
