package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local serves files from a directory on disk.
type Local struct {
	root string
}

// NewLocal creates a store rooted at dir. The directory is not checked
// until the first read.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Root returns the directory the store reads from.
func (l *Local) Root() string {
	return l.root
}

// Get opens the file stored under key.
func (l *Local) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := l.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrAccessDenied, p)
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return f, nil
}

// Exists reports whether a regular file is stored under key.
func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := l.path(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Join(ErrReadFailed, err)
	}
	return info.Mode().IsRegular(), nil
}

// path maps a slash-separated key to a file path, rejecting keys that
// would escape the root.
func (l *Local) path(key string) (string, error) {
	name := filepath.FromSlash(key)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(l.root, name), nil
}

var _ Storage = (*Local)(nil)
