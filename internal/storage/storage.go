// Package storage handles where encoded audio products end up. It
// defines the Store port plus a local-disk implementation and an S3
// publisher layered on top of it.
package storage

import "context"

// Store finalizes encoded output files and owns the scratch space used
// for intermediate encodes.
type Store interface {
	// ScratchDir returns a directory for intermediate files.
	ScratchDir() string

	// Publish finalizes an encoded file already written to path and
	// returns the location callers should report: the absolute local
	// path, or an object URL when a remote backend is configured.
	Publish(ctx context.Context, path string) (string, error)

	// Discard removes intermediate files.
	// It keeps going when individual removals fail.
	Discard(ctx context.Context, paths []string) error
}
