package artifact

import (
	"fmt"
	"strings"
)

type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeS3   Scheme = "s3"
	SchemeGCS  Scheme = "gs"
)

// Location addresses an artifact on local disk or in an object store.
type Location struct {
	Scheme Scheme
	Bucket string
	Key    string // object key, or the filesystem path for SchemeFile
}

func (l Location) String() string {
	if l.Scheme == SchemeFile {
		return l.Key
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Key)
}

func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty artifact location")
	}
	for _, scheme := range []Scheme{SchemeS3, SchemeGCS} {
		prefix := string(scheme) + "://"
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		bucket, key, ok := strings.Cut(strings.TrimPrefix(raw, prefix), "/")
		if !ok || bucket == "" || strings.Trim(key, "/") == "" {
			return Location{}, fmt.Errorf("invalid %s location %q: want %sbucket/key", scheme, raw, prefix)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	}
	path := strings.TrimPrefix(raw, "file://")
	if path == "" || strings.Contains(path, "://") {
		return Location{}, fmt.Errorf("unsupported artifact location %q", raw)
	}
	return Location{Scheme: SchemeFile, Key: path}, nil
}
