package artifact

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadValidArtifact(t *testing.T) {
	art, err := Load(context.Background(), filepath.Join("testdata", "haiku3_vs_premium.json"))
	require.NoError(t, err)

	require.Len(t, art.Records, 4)
	assert.Equal(t, models.Record{
		Target:           "Juice Shop",
		Profile:          models.ProfileBreadth,
		Findings:         []string{"Admin login SQL injection", "JWT none-algorithm auth bypass"},
		TokensUsed:       78210,
		EstimatedCostUSD: 0.09,
	}, art.Records[0])
	assert.Equal(t, models.ProfilePremium, art.Records[3].Profile)
	assert.Len(t, art.Digest, 64)
	assert.Equal(t, SchemeFile, art.Location.Scheme)
}

func TestLoadMalformed(t *testing.T) {
	tests := map[string]string{
		"missing tokens_used": `[{"target":"Juice Shop","profile":"premium","findings":["A"],"estimated_cost_usd":0.62}]`,
		"tokens as string":    `[{"target":"Juice Shop","profile":"premium","findings":["A"],"tokens_used":"55113","estimated_cost_usd":0.62}]`,
		"fractional tokens":   `[{"target":"Juice Shop","profile":"premium","findings":["A"],"tokens_used":1.5,"estimated_cost_usd":0.62}]`,
		"negative cost":       `[{"target":"Juice Shop","profile":"premium","findings":["A"],"tokens_used":1,"estimated_cost_usd":-1}]`,
		"unknown profile":     `[{"target":"Juice Shop","profile":"gpt","findings":["A"],"tokens_used":1,"estimated_cost_usd":0.1}]`,
		"findings not list":   `[{"target":"Juice Shop","profile":"premium","findings":"A","tokens_used":1,"estimated_cost_usd":0.1}]`,
		"object not array":    `{"target":"Juice Shop","profile":"premium","findings":["A"],"tokens_used":1,"estimated_cost_usd":0.1}`,
		"truncated json":      `[{"target":"Juice Shop"`,
		"duplicate pair": `[
			{"target":"DVWA","profile":"premium","findings":[],"tokens_used":1,"estimated_cost_usd":0.1},
			{"target":"DVWA","profile":"premium","findings":["A"],"tokens_used":2,"estimated_cost_usd":0.2}
		]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			art, err := Load(context.Background(), writeArtifact(t, body))
			require.Error(t, err)
			assert.Nil(t, art)
			assert.Equal(t, coreerrors.CategoryMalformedArtifact, coreerrors.CategoryOf(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, coreerrors.CategoryMissingArtifact, coreerrors.CategoryOf(err))
}

func TestLoadEmptyArray(t *testing.T) {
	art, err := Load(context.Background(), writeArtifact(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, art.Records)
}

type fakeOpener struct {
	objects map[string]string
	opened  []*trackingReader
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

func (f *fakeOpener) Open(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	body, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("object %s/%s: %w", bucket, key, fs.ErrNotExist)
	}
	r := &trackingReader{Reader: strings.NewReader(body)}
	f.opened = append(f.opened, r)
	return r, nil
}

func TestLoaderRemote(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "haiku3_vs_premium.json"))
	require.NoError(t, err)

	s3 := &fakeOpener{objects: map[string]string{"bench/results.json": string(data)}}
	gcs := &fakeOpener{objects: map[string]string{"bench/bad.json": `[{"target":"x"}]`}}
	loader := &Loader{S3: s3, GCS: gcs}

	art, err := loader.Load(context.Background(), "s3://bench/results.json")
	require.NoError(t, err)
	assert.Len(t, art.Records, 4)
	require.Len(t, s3.opened, 1)
	assert.True(t, s3.opened[0].closed)

	_, err = loader.Load(context.Background(), "gs://bench/bad.json")
	assert.Equal(t, coreerrors.CategoryMalformedArtifact, coreerrors.CategoryOf(err))
	require.Len(t, gcs.opened, 1)
	assert.True(t, gcs.opened[0].closed, "handle must be released on parse failure")

	_, err = loader.Load(context.Background(), "gs://bench/missing.json")
	assert.Equal(t, coreerrors.CategoryMissingArtifact, coreerrors.CategoryOf(err))
}

func TestLoaderRemoteWithoutClient(t *testing.T) {
	_, err := Load(context.Background(), "s3://bench/results.json")
	assert.Equal(t, coreerrors.CategoryInvalidInput, coreerrors.CategoryOf(err))
}

func TestDigestIgnoresFormatting(t *testing.T) {
	compact := []byte(`[{"target":"DVWA","profile":"premium","findings":[],"tokens_used":1,"estimated_cost_usd":0.1}]`)
	pretty := []byte("[\n  {\"profile\": \"premium\", \"target\": \"DVWA\",\n   \"findings\": [], \"estimated_cost_usd\": 0.1, \"tokens_used\": 1}\n]")

	a, err := Digest(compact)
	require.NoError(t, err)
	b, err := Digest(pretty)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"target":"DVWA","profile":"bedrock-haiku3","findings":["A"],"tokens_used":10,"estimated_cost_usd":0.01}`))
	require.NoError(t, err)
	assert.Equal(t, "DVWA", rec.Target)

	_, err = DecodeRecord([]byte(`{"target":"DVWA","profile":"bedrock-haiku3","findings":["A"],"estimated_cost_usd":0.01}`))
	assert.Equal(t, coreerrors.CategoryMalformedArtifact, coreerrors.CategoryOf(err))
}
