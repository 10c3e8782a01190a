package publish

import (
	"context"
	"fmt"

	"github.com/K0NGR3SS/profilebench/internal/artifact"
	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
)

const MarkdownContentType = "text/markdown; charset=utf-8"

type Putter interface {
	Put(ctx context.Context, bucket, key, contentType string, body []byte) error
}

type Publisher struct {
	S3  Putter
	GCS Putter
}

// Publish uploads the rendered report to an s3:// or gs:// location.
func (p *Publisher) Publish(ctx context.Context, location string, body []byte) error {
	loc, err := artifact.ParseLocation(location)
	if err != nil {
		return coreerrors.Wrap(err, coreerrors.CategoryInvalidInput, "bad_publish_location", "")
	}

	var putter Putter
	switch loc.Scheme {
	case artifact.SchemeS3:
		putter = p.S3
	case artifact.SchemeGCS:
		putter = p.GCS
	default:
		return coreerrors.Wrap(fmt.Errorf("publish location must be s3:// or gs://, got %q", location), coreerrors.CategoryInvalidInput, "bad_publish_location", "")
	}
	if putter == nil {
		return coreerrors.Wrap(fmt.Errorf("no client configured for %s", loc), coreerrors.CategoryInvalidInput, "no_publish_client", "")
	}
	if err := putter.Put(ctx, loc.Bucket, loc.Key, MarkdownContentType, body); err != nil {
		return coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "publish_failed", "")
	}
	return nil
}
