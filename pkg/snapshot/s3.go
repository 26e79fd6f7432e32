package snapshot

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/incr/internal/errors"
)

// objectPutter is the part of *s3.Client the publisher uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ objectPutter = (*s3.Client)(nil)

// S3Publisher stores snapshots as objects in an S3 bucket.
//
// Example usage:
//
//	client := snapshot.NewS3Client("eu-west-1", "")
//	pub := snapshot.NewS3Publisher(client, "renders", "demos/")
//	loc, err := pub.Publish(ctx, "card-0.html", html)
type S3Publisher struct {
	client objectPutter
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// NewS3Publisher creates a publisher writing to bucket under prefix.
func NewS3Publisher(client *s3.Client, bucket, prefix string, opts ...Option) *S3Publisher {
	return newS3Publisher(client, bucket, prefix, opts...)
}

func newS3Publisher(client objectPutter, bucket, prefix string, opts ...Option) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: buildOptions(opts).logger,
		now:    time.Now,
	}
}

// NewS3Client builds an S3 client for region. A non-empty endpoint selects
// an S3-compatible store with path-style addressing. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(envCredentials{}),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// envCredentials reads static credentials from the environment.
type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E040").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

// Publish uploads html to prefix+name and returns its s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	key := p.prefix + name

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("E040").WithDetailf("put s3://%s/%s", p.bucket, key).Wrap(err)
	}
	loc := "s3://" + p.bucket + "/" + key
	p.logger.Debug("snapshot published", "name", name, "location", loc, "bytes", len(html))
	return loc, nil
}
