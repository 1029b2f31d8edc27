package s3store

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/deuce-x/deuce/internal/errors"
	"github.com/deuce-x/deuce/internal/todo/todotest"
)

// fakeClient is an in-memory bucket.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: map[string][]byte{}, types: map[string]string{}}
}

func (c *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	data, ok := c.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (c *fakeClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	name := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	c.objects[name] = data
	c.types[name] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Contract(t *testing.T) {
	todotest.RunStoreContract(t, New(newFakeClient(), "bucket", "lists/", "todos"))
}

func TestS3Store_Object(t *testing.T) {
	client := newFakeClient()
	store := New(client, "bucket", "lists/", "todos")
	if store.Key() != "lists/todos.json" {
		t.Errorf("Key() = %q", store.Key())
	}
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := string(client.objects["bucket/lists/todos.json"]); got != "[]" {
		t.Errorf("object = %q, want []", got)
	}
	if got := client.types["bucket/lists/todos.json"]; got != "application/json" {
		t.Errorf("content type = %q", got)
	}
}

func TestS3Store_Errors(t *testing.T) {
	client := newFakeClient()
	client.err = stderrors.New("access denied")
	store := New(client, "bucket", "", "todos")

	if _, err := store.Load(context.Background()); errors.Code(err) != "D201" {
		t.Errorf("Load() error = %v, want D201", err)
	}
	if err := store.Save(context.Background(), nil); errors.Code(err) != "D202" {
		t.Errorf("Save() error = %v, want D202", err)
	}
}

func TestNewClient(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	client := NewClient(Options{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle || aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("Options() = %+v", opts)
	}
	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" {
		t.Errorf("credentials = %+v", creds)
	}
}
