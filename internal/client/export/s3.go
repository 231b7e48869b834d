package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 uploads export artifacts to an S3-compatible bucket (AWS or MinIO).
// Keys are date-partitioned: exports/<year>/<month>/<day>/<name>.
type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// putObject is a test seam around the SDK call.
	putObject func(ctx context.Context, in *s3.PutObjectInput) error
}

func NewS3(endpoint, region, bucket, accessKey, secretKey string) *S3 {
	return &S3{
		Endpoint:  endpoint,
		Region:    region,
		Bucket:    bucket,
		AccessKey: accessKey,
		SecretKey: secretKey,
	}
}

func (e *S3) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(e.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.AccessKey,
			e.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if e.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (e *S3) Save(ctx context.Context, name string, data []byte) (string, error) {
	d := time.Now()
	key := fmt.Sprintf("exports/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), name)

	put := e.putObject
	if put == nil {
		client, err := e.client(ctx)
		if err != nil {
			return "", fmt.Errorf("s3 config: %w", err)
		}
		put = func(ctx context.Context, in *s3.PutObjectInput) error {
			_, err := client.PutObject(ctx, in)
			return err
		}
	}

	err := put(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.Bucket, key), nil
}
