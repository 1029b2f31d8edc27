// Package s3store keeps to-do lists in an S3 bucket.
package s3store

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo"
)

// Client is the part of *s3.Client the store uses.
type Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implements todo.Store as the object <prefix><key>.json.
type Store struct {
	client Client
	bucket string
	key    string
}

// New creates a store in bucket.
func New(client Client, bucket, prefix, key string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		key:    prefix + key + ".json",
	}
}

// Options configures NewClient.
type Options struct {
	Region string

	// Endpoint replaces the AWS endpoint, e.g. a MinIO URL.
	Endpoint string

	// PathStyle puts the bucket in the URL path.
	PathStyle bool
}

// NewClient creates an S3 client. Credentials come from AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; without them requests are
// anonymous.
func NewClient(o Options) *s3.Client {
	opts := s3.Options{
		Region:       o.Region,
		UsePathStyle: o.PathStyle,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.AnonymousCredentials{}.Retrieve(ctx)
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}

// Key returns the object key of the list.
func (s *Store) Key() string {
	return s.key
}

// Load implements todo.Store.
func (s *Store) Load(ctx context.Context) ([]todo.Item, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if stderrors.As(err, &missing) {
			return nil, nil
		}
		return nil, errors.New("D201").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("D201").Wrap(err)
	}
	return todo.Decode(data)
}

// Save implements todo.Store.
func (s *Store) Save(ctx context.Context, items []todo.Item) error {
	data, err := todo.Encode(items)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.New("D202").Wrap(err)
	}
	return nil
}
