package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"openupload/internal/storage"
)

const (
	dirPerm = 0o755

	errFailedCreateRootDirFmt = "failed to create storage root: %w"
	errFailedCreateDirFmt     = "failed to create blob directory: %w"
	errFailedCreateBlobFmt    = "failed to create blob: %w"
	errFailedWriteBlobFmt     = "failed to write blob: %w"
	errFailedOpenBlobFmt      = "failed to open blob: %w"
	errFailedDeleteBlobFmt    = "failed to delete blob: %w"
	errKeyEscapesRoot         = "blob key escapes storage root"
)

// Store keeps blobs as plain files under a root directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf(errFailedCreateRootDirFmt, err)
	}
	return &Store{root: root}, nil
}

// path resolves key under the root and rejects anything that would land
// outside it.
func (s *Store) path(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, filepath.Clean(s.root)+string(filepath.Separator)) {
		return "", fmt.Errorf(errKeyEscapesRoot)
	}
	return p, nil
}

func (s *Store) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return 0, fmt.Errorf(errFailedCreateDirFmt, err)
	}

	f, err := os.Create(p)
	if err != nil {
		return 0, fmt.Errorf(errFailedCreateBlobFmt, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(p)
		return 0, fmt.Errorf(errFailedWriteBlobFmt, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(p)
		return 0, fmt.Errorf(errFailedWriteBlobFmt, err)
	}

	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf(errFailedOpenBlobFmt, err)
	}

	return f, nil
}

// Delete is idempotent: a missing blob is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(errFailedDeleteBlobFmt, err)
	}

	return nil
}
