// Package store publishes encoded parameter tables to a local directory or
// an S3-compatible bucket.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates a missing object.
var ErrNotFound = errors.New("object not found")

const (
	dirPerm  = 0o755
	filePerm = 0o644

	s3Scheme = "s3://"
)

// Sink stores and retrieves objects by key.
type Sink interface {
	Put(ctx context.Context, key string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// FileSink stores objects as files below Dir. Keys use '/' separators.
type FileSink struct {
	Dir string
}

// Put writes body to Dir/key, creating parent directories.
func (s FileSink) Put(ctx context.Context, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, body, filePerm)
}

// Get reads Dir/key.
func (s FileSink) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return data, err
}

func (s FileSink) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes the sink directory", key)
	}
	return filepath.Join(s.Dir, clean), nil
}

// Location is a parsed output or input location.
type Location struct {
	// Bucket is set for s3:// locations.
	Bucket string
	// Key is the object key (S3) or the file name (local).
	Key string
	// Dir is the local directory for file locations.
	Dir string
}

// IsS3 reports whether the location names an S3 object.
func (l Location) IsS3() bool { return l.Bucket != "" }

// ParseLocation accepts "s3://bucket/key" or a local file path.
func ParseLocation(s string) (Location, error) {
	if rest, ok := strings.CutPrefix(s, s3Scheme); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid S3 location %q: want s3://bucket/key", s)
		}
		return Location{Bucket: bucket, Key: key}, nil
	}
	if s == "" {
		return Location{}, errors.New("empty location")
	}
	return Location{Dir: filepath.Dir(s), Key: filepath.Base(s)}, nil
}

// Open returns the sink serving loc. For S3 locations the bucket of loc
// replaces cfg.Bucket.
func Open(ctx context.Context, loc Location, cfg S3Config) (Sink, error) {
	if !loc.IsS3() {
		return FileSink{Dir: loc.Dir}, nil
	}
	cfg.Bucket = loc.Bucket
	return NewS3Sink(ctx, cfg)
}
