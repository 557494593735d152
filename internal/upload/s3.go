package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lithammer/shortuuid/v4"
)

const URL_EXPIRES = 1000 * time.Second

// S3Presigner hands out pre-signed PUT URLs so clients upload images
// straight to the bucket.
type S3Presigner struct {
	bucket    string
	presigner *s3.PresignClient
}

func NewS3Presigner(cfg config.S3Config) *S3Presigner {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		bucket:    cfg.Bucket,
		presigner: s3.NewPresignClient(client),
	}
}

func objectKey(now time.Time) string {
	return fmt.Sprintf("%s-%d.jpeg", shortuuid.New(), now.UnixMilli())
}

func (p *S3Presigner) UploadURL(ctx context.Context) (string, error) {
	req, err := p.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(objectKey(time.Now())),
	}, s3.WithPresignExpires(URL_EXPIRES))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
