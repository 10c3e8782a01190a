package commands

import (
	"context"
	"fmt"

	"github.com/K0NGR3SS/profilebench/internal/artifact"
	awsclient "github.com/K0NGR3SS/profilebench/internal/aws"
	"github.com/K0NGR3SS/profilebench/internal/config"
	"github.com/K0NGR3SS/profilebench/internal/gcs"
	"github.com/K0NGR3SS/profilebench/internal/publish"
	"github.com/pterm/pterm"
)

// storageClients creates object-store clients only for the schemes a
// command actually touches.
type storageClients struct {
	cfg    config.StorageConfig
	logger *pterm.Logger
	s3     *awsclient.Client
	gcs    *gcs.Client
}

func (s *storageClients) s3Client(ctx context.Context) (*awsclient.Client, error) {
	if s.s3 == nil {
		s.logger.Debug("initializing s3 client", s.logger.Args("region", s.cfg.Region))
		c, err := awsclient.NewClient(ctx, s.cfg.Region)
		if err != nil {
			return nil, err
		}
		s.s3 = c
	}
	return s.s3, nil
}

func (s *storageClients) gcsClient(ctx context.Context) (*gcs.Client, error) {
	if s.gcs == nil {
		s.logger.Debug("initializing gcs client", s.logger.Args("anonymous", s.cfg.Anonymous))
		c, err := gcs.NewClient(ctx, s.cfg.Anonymous)
		if err != nil {
			return nil, err
		}
		s.gcs = c
	}
	return s.gcs, nil
}

func (s *storageClients) Close() {
	if s.gcs != nil {
		_ = s.gcs.Close()
	}
}

func (s *storageClients) loaderFor(ctx context.Context, location string) (*artifact.Loader, error) {
	loader := &artifact.Loader{Logger: s.logger}
	loc, err := artifact.ParseLocation(location)
	if err != nil {
		// Loader.Load reports the parse error with its classification.
		return loader, nil
	}
	switch loc.Scheme {
	case artifact.SchemeS3:
		c, err := s.s3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		loader.S3 = c
	case artifact.SchemeGCS:
		c, err := s.gcsClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		loader.GCS = c
	}
	return loader, nil
}

func (s *storageClients) publisherFor(ctx context.Context, location string) (*publish.Publisher, error) {
	p := &publish.Publisher{}
	loc, err := artifact.ParseLocation(location)
	if err != nil {
		return p, nil
	}
	switch loc.Scheme {
	case artifact.SchemeS3:
		c, err := s.s3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		p.S3 = c
	case artifact.SchemeGCS:
		c, err := s.gcsClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		p.GCS = c
	}
	return p, nil
}
