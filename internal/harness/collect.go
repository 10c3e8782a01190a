package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/K0NGR3SS/profilebench/internal/artifact"
	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/fsx"
	"github.com/K0NGR3SS/profilebench/internal/models"
)

// Collect reads the summary.json of every planned run. Every missing file is
// named in a single MissingArtifact error; nothing is returned on failure.
func Collect(runs []Run) ([]models.Record, error) {
	records := make([]models.Record, 0, len(runs))
	var missing []string
	for _, run := range runs {
		rec, err := readSummary(run.ArtifactPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, run.ArtifactPath)
				continue
			}
			return nil, err
		}
		if rec.Target != run.Target.Name && rec.Target != run.Target.Key {
			return nil, malformedSummary(run.ArtifactPath, fmt.Errorf("target %q does not match %q", rec.Target, run.Target.Name))
		}
		if rec.Profile != run.Profile {
			return nil, malformedSummary(run.ArtifactPath, fmt.Errorf("profile %q does not match %q", rec.Profile, run.Profile))
		}
		// Reports group on the display name regardless of which form the harness wrote.
		rec.Target = run.Target.Name
		records = append(records, rec)
	}
	if len(missing) > 0 {
		return nil, coreerrors.Wrap(
			fmt.Errorf("missing %d run artifact(s): %s", len(missing), strings.Join(missing, ", ")),
			coreerrors.CategoryMissingArtifact, "summary_missing", "rerun the harness for the listed target/profile pairs")
	}
	if err := artifact.CheckUnique(records); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteResults stores collected records as the combined results artifact.
func WriteResults(path string, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	data = append(data, '\n')
	if err := fsx.WriteFileAtomic(path, data, 0o644); err != nil {
		return coreerrors.Wrap(fmt.Errorf("write %s: %w", path, err), coreerrors.CategoryIOFailure, "results_write", "")
	}
	return nil
}

func readSummary(path string) (models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Record{}, err
		}
		return models.Record{}, coreerrors.Wrap(fmt.Errorf("open %s: %w", path, err), coreerrors.CategoryIOFailure, "summary_open", "")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Record{}, coreerrors.Wrap(fmt.Errorf("read %s: %w", path, err), coreerrors.CategoryIOFailure, "summary_read", "")
	}
	rec, err := artifact.DecodeRecord(data)
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func malformedSummary(path string, err error) error {
	return coreerrors.Wrap(fmt.Errorf("%s: %w", path, err), coreerrors.CategoryMalformedArtifact, "summary_mismatch", "the summary was written to the wrong target/profile directory")
}
