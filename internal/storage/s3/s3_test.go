package s3

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNew_DefaultsWithoutNetwork(t *testing.T) {
	b, err := New(context.Background(), Config{
		Bucket:          "images",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        "http://127.0.0.1:9000",
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "images", b.bucket)
	assert.Equal(t, "us-east-1", b.region)
	assert.NotNil(t, b.uploader)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", &types.NotFound{})))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}
