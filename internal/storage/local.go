package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements Store on local disk. Published files stay where
// the encoder wrote them; Publish only resolves the reported path.
type LocalStore struct {
	scratchDir string
}

// NewLocalStore creates a LocalStore. If scratchDir is empty, a "slicer"
// directory under the system temp directory is used. The directory is
// created if it doesn't exist.
func NewLocalStore(scratchDir string) (*LocalStore, error) {
	if scratchDir == "" {
		scratchDir = filepath.Join(os.TempDir(), "slicer")
	}

	if err := os.MkdirAll(scratchDir, 0o750); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	return &LocalStore{scratchDir: scratchDir}, nil
}

// ScratchDir returns the scratch directory path.
func (s *LocalStore) ScratchDir() string {
	return s.scratchDir
}

// Publish resolves the file to an absolute path and verifies it exists.
func (s *LocalStore) Publish(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("published file missing: %w", err)
	}
	return abs, nil
}

// Discard removes the specified intermediate files. It continues even if
// some files fail to delete, returning the first error encountered.
func (s *LocalStore) Discard(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove %s: %w", p, err)
			}
		}
	}
	return firstErr
}

// Verify interface implementation at compile time.
var _ Store = (*LocalStore)(nil)
