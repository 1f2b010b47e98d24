package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// Storage reads files by slash-separated key.
type Storage interface {
	// Get opens a file. The caller must close the reader.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether the key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// ReadAll reads the whole file stored under key.
func ReadAll(ctx context.Context, s Storage, key string) ([]byte, error) {
	rc, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, fmt.Errorf("read %q: %w", key, err))
	}
	return data, nil
}

// JoinKey joins a prefix and a name into a storage key.
func JoinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

const s3Scheme = "s3://"

// Location is a parsed operator-supplied storage location.
type Location struct {
	Bucket string // empty for local paths
	Path   string // key or key prefix inside the bucket, or a local filesystem path
}

// IsS3 reports whether the location points at a bucket.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

// ParseLocation parses "s3://bucket/key" or a local filesystem path.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
	}
	if !strings.HasPrefix(raw, s3Scheme) {
		return Location{Path: raw}, nil
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, s3Scheme), "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: missing bucket in %q", ErrInvalidLocation, raw)
	}
	return Location{Bucket: bucket, Path: strings.Trim(key, "/")}, nil
}

// Open resolves a file location into a store and the key of the file in it.
// Local paths are served by a Local store rooted at the file's directory.
func Open(ctx context.Context, raw string, cfg S3Config) (Storage, string, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}
	if loc.IsS3() {
		if loc.Path == "" {
			return nil, "", fmt.Errorf("%w: missing key in %q", ErrInvalidLocation, raw)
		}
		cfg.Bucket = loc.Bucket
		s, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s, loc.Path, nil
	}
	return NewLocal(filepath.Dir(loc.Path)), filepath.Base(loc.Path), nil
}

// OpenDir resolves a directory location into a store and a key prefix.
func OpenDir(ctx context.Context, raw string, cfg S3Config) (Storage, string, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}
	if loc.IsS3() {
		cfg.Bucket = loc.Bucket
		s, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return s, loc.Path, nil
	}
	return NewLocal(loc.Path), "", nil
}
