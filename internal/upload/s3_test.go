package upload

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey(time.UnixMilli(1700000000123))
	assert.True(t, strings.HasSuffix(key, "-1700000000123.jpeg"), key)
}

func TestUploadURLIsPresignedPut(t *testing.T) {
	p := NewS3Presigner(config.S3Config{
		Region:    "eu-north-1",
		Bucket:    "blog-images",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	})

	raw, err := p.UploadURL(context.Background())
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Contains(t, u.Host, "blog-images")
	assert.True(t, strings.HasSuffix(u.Path, ".jpeg"))

	q := u.Query()
	assert.Equal(t, "1000", q.Get("X-Amz-Expires"))
	assert.Contains(t, q.Get("X-Amz-Credential"), "AKIDEXAMPLE")
	assert.Equal(t, "host", q.Get("X-Amz-SignedHeaders"))
}
