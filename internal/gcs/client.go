package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type objectStore interface {
	NewReader(ctx context.Context, bucket, object string) (io.ReadCloser, error)
	NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser
}

type storageStore struct {
	client *storage.Client
}

func (s storageStore) NewReader(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	return s.client.Bucket(bucket).Object(object).NewReader(ctx)
}

func (s storageStore) NewWriter(ctx context.Context, bucket, object, contentType string) io.WriteCloser {
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

type Client struct {
	store  objectStore
	closer io.Closer
}

// NewClient connects with application default credentials, or without any
// credentials when anonymous is set (public benchmark buckets).
func NewClient(ctx context.Context, anonymous bool) (*Client, error) {
	var opts []option.ClientOption
	if anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Client{store: storageStore{client: client}, closer: client}, nil
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Open streams an object. A missing object or bucket matches fs.ErrNotExist.
func (c *Client) Open(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	r, err := c.store.NewReader(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	return r, nil
}

func (c *Client) Put(ctx context.Context, bucket, object, contentType string, body []byte) error {
	w := c.store.NewWriter(ctx, bucket, object, contentType)
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}
