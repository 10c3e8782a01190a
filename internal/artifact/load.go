package artifact

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/models"
	"github.com/K0NGR3SS/profilebench/internal/schema"
	"github.com/gowebpki/jcs"
	"github.com/pterm/pterm"
)

// Opener reads objects from a remote store. Implementations must report a
// missing object with an error that matches fs.ErrNotExist.
type Opener interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Artifact is a loaded and validated results file.
type Artifact struct {
	Location Location
	Records  []models.Record
	Digest   string
}

type Loader struct {
	S3     Opener
	GCS    Opener
	Logger *pterm.Logger
}

// Load reads a local results file. Remote locations need a Loader with the
// matching Opener configured.
func Load(ctx context.Context, path string) (*Artifact, error) {
	return (&Loader{}).Load(ctx, path)
}

func (l *Loader) Load(ctx context.Context, raw string) (*Artifact, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, coreerrors.Wrap(err, coreerrors.CategoryInvalidInput, "bad_location", "use a path, s3://bucket/key or gs://bucket/object")
	}

	data, err := l.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	l.debug("artifact read", "location", loc.String(), "bytes", len(data))

	records, err := DecodeResults(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}
	digest, err := Digest(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}
	return &Artifact{Location: loc, Records: records, Digest: digest}, nil
}

// DecodeResults validates and decodes a combined results array. It never
// returns records alongside an error.
func DecodeResults(data []byte) ([]models.Record, error) {
	if !json.Valid(data) {
		return nil, malformed(errors.New("invalid JSON"))
	}
	if err := schema.ValidateResults(data); err != nil {
		return nil, malformed(err)
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, malformed(fmt.Errorf("decode records: %w", err))
	}
	if err := CheckUnique(records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeRecord validates and decodes a single per-run summary.
func DecodeRecord(data []byte) (models.Record, error) {
	if !json.Valid(data) {
		return models.Record{}, malformed(errors.New("invalid JSON"))
	}
	if err := schema.ValidateRecord(data); err != nil {
		return models.Record{}, malformed(err)
	}
	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Record{}, malformed(fmt.Errorf("decode record: %w", err))
	}
	return rec, nil
}

// CheckUnique enforces one record per (target, profile).
func CheckUnique(records []models.Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		key := rec.Key()
		if _, ok := seen[key]; ok {
			return malformed(fmt.Errorf("duplicate record for target %q profile %q", rec.Target, rec.Profile))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Digest returns the sha256 of the RFC 8785 canonical form of data.
func Digest(data []byte) (string, error) {
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", malformed(fmt.Errorf("canonicalize: %w", err))
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func (l *Loader) read(ctx context.Context, loc Location) ([]byte, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch loc.Scheme {
	case SchemeFile:
		rc, err = os.Open(loc.Key)
	case SchemeS3:
		if l.S3 == nil {
			return nil, coreerrors.Wrap(fmt.Errorf("no s3 client configured for %s", loc), coreerrors.CategoryInvalidInput, "no_s3_client", "")
		}
		rc, err = l.S3.Open(ctx, loc.Bucket, loc.Key)
	case SchemeGCS:
		if l.GCS == nil {
			return nil, coreerrors.Wrap(fmt.Errorf("no gcs client configured for %s", loc), coreerrors.CategoryInvalidInput, "no_gcs_client", "")
		}
		rc, err = l.GCS.Open(ctx, loc.Bucket, loc.Key)
	default:
		return nil, coreerrors.Wrap(fmt.Errorf("unsupported scheme %q", loc.Scheme), coreerrors.CategoryInvalidInput, "bad_location", "")
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, coreerrors.Wrap(fmt.Errorf("artifact %s does not exist: %w", loc, err), coreerrors.CategoryMissingArtifact, "artifact_missing", "run the benchmark harness first")
		}
		return nil, coreerrors.Wrap(fmt.Errorf("open %s: %w", loc, err), coreerrors.CategoryIOFailure, "artifact_open", "")
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, coreerrors.Wrap(fmt.Errorf("read %s: %w", loc, err), coreerrors.CategoryIOFailure, "artifact_read", "")
	}
	return buf.Bytes(), nil
}

func (l *Loader) debug(msg string, args ...any) {
	if l.Logger == nil {
		return
	}
	l.Logger.Debug(msg, l.Logger.Args(args...))
}

func malformed(err error) error {
	return coreerrors.Wrap(err, coreerrors.CategoryMalformedArtifact, "artifact_malformed", "regenerate the results artifact with the benchmark harness")
}
