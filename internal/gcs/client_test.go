package gcs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	bytes.Buffer
	onClose func(string)
	failure error
}

func (w *memWriter) Close() error {
	if w.failure != nil {
		return w.failure
	}
	w.onClose(w.String())
	return nil
}

type memStore struct {
	objects  map[string]string
	types    map[string]string
	closeErr error
}

func (m *memStore) NewReader(_ context.Context, bucket, object string) (io.ReadCloser, error) {
	if bucket == "gone" {
		return nil, storage.ErrBucketNotExist
	}
	body, ok := m.objects[bucket+"/"+object]
	if !ok {
		return nil, storage.ErrObjectNotExist
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (m *memStore) NewWriter(_ context.Context, bucket, object, contentType string) io.WriteCloser {
	key := bucket + "/" + object
	return &memWriter{
		failure: m.closeErr,
		onClose: func(s string) {
			m.objects[key] = s
			m.types[key] = contentType
		},
	}
}

func TestOpenAndPut(t *testing.T) {
	store := &memStore{objects: map[string]string{}, types: map[string]string{}}
	c := &Client{store: store}

	require.NoError(t, c.Put(context.Background(), "bench", "r.md", "text/markdown", []byte("# report")))
	assert.Equal(t, "text/markdown", store.types["bench/r.md"])

	rc, err := c.Open(context.Background(), "bench", "r.md")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "# report", string(data))
}

func TestOpenMissing(t *testing.T) {
	c := &Client{store: &memStore{objects: map[string]string{}}}

	_, err := c.Open(context.Background(), "bench", "none.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = c.Open(context.Background(), "gone", "none.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPutCloseFailure(t *testing.T) {
	c := &Client{store: &memStore{objects: map[string]string{}, types: map[string]string{}, closeErr: errors.New("precondition failed")}}
	err := c.Put(context.Background(), "bench", "r.md", "text/markdown", []byte("x"))
	assert.ErrorContains(t, err, "precondition failed")
}

func TestCloseWithoutClient(t *testing.T) {
	assert.NoError(t, (&Client{}).Close())
}
