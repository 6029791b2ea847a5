package present

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 10 * time.Second

// S3Config contains the connection settings for an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
}

// Enabled reports whether a bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// S3Publisher uploads PNG images to an S3 bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher using static credentials and path-style addressing
func NewS3Publisher(cfg S3Config) (*S3Publisher, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Publisher(s3.New(sess), cfg), nil
}

// newS3Publisher wires a publisher to an existing client
func newS3Publisher(client s3iface.S3API, cfg S3Config) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}
}

// Publish encodes img as PNG and uploads it to <prefix>/<name>.png
func (sp *S3Publisher) Publish(ctx context.Context, name string, img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}

	key := path.Join(sp.prefix, name+".png")
	if err := sp.upload(ctx, key, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("s3://%s/%s", sp.bucket, key), nil
}

func (sp *S3Publisher) upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := sp.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(sp.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
